package gql

import (
	"errors"
	"log"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"

	"github.com/graphql-go/graphql"
)

var errInternal = errors.New("internal error")

// guard envuelve los resolvers para que los errores de infraestructura no
// lleguen al cliente en errors[].message; se loguean y se responde "internal error".
func guard(fs graphql.Fields) graphql.Fields {
	for name, f := range fs {
		if f.Resolve == nil {
			continue
		}
		resolve, field := f.Resolve, name
		f.Resolve = func(p graphql.ResolveParams) (any, error) {
			out, err := resolve(p)
			if err == nil || errors.Is(err, errUnauthenticated) || service.IsDomainError(err) {
				return out, err
			}
			log.Printf("[graphql] %s: %v", field, err)
			return nil, errInternal
		}
	}
	return fs
}
