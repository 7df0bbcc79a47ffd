package selling

import "errors"

var (
	// ErrSaleNotFound indica que a venda não existe.
	ErrSaleNotFound = errors.New("venda não encontrada")
	// ErrSaleForbidden indica que o principal não tem permissão sobre a venda.
	ErrSaleForbidden = errors.New("sem permissão sobre esta venda")
	// ErrBranchForbidden indica tentativa de escrita em sucursal alheia.
	ErrBranchForbidden = errors.New("não pode registrar vendas para outra sucursal")
	// ErrBranchChangeForbidden indica tentativa de mover a venda de sucursal.
	ErrBranchChangeForbidden = errors.New("não pode mudar a sucursal da venda")
	// ErrDeleteNotAllowed indica exclusão por um papel sem privilégio.
	ErrDeleteNotAllowed = errors.New("somente o escritório central pode excluir vendas")
	// ErrInvalidSaleData indica unidades ou preço fora do permitido.
	ErrInvalidSaleData = errors.New("unidades e preço devem ser maiores que zero")
)
