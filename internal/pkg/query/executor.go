package query

import "github.com/Azell-Tech/azell-web/internal/pkg"

// Execute pagina la consulta y convierte cada fila con converter.
func Execute[DB any, Domain any](
	q *Query[DB],
	pagination *pkg.PaginationParams,
	converter func(*DB) (*Domain, error),
) ([]*Domain, int64, error) {
	return pkg.Paginate(q.build(), pagination, q.orderByOrDefault(), converter)
}

func ExecuteAll[DB any, Domain any](
	q *Query[DB],
	converter func(*DB) (*Domain, error),
) ([]*Domain, error) {
	rows, err := q.Find()
	if err != nil {
		return nil, err
	}

	items := make([]*Domain, 0, len(rows))
	for i := range rows {
		item, err := converter(&rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (q *Query[T]) orderByOrDefault() string {
	if q.orderBy == "" {
		return "id DESC"
	}
	return q.orderBy
}
