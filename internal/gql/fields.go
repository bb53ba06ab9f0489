package gql

import (
	"reflect"
	"strings"
	"time"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// field resuelve por el nombre del tag json del struct fuente, así el schema
// usa los mismos nombres que la API REST.
func field(name string, typ graphql.Output) *graphql.Field {
	return &graphql.Field{
		Type: typ,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return lookup(p.Source, name), nil
		},
	}
}

func fields(typ graphql.Output, names ...string) graphql.Fields {
	out := graphql.Fields{}
	for _, n := range names {
		out[n] = field(n, typ)
	}
	return out
}

func merge(all ...graphql.Fields) graphql.Fields {
	out := graphql.Fields{}
	for _, f := range all {
		for k, v := range f {
			out[k] = v
		}
	}
	return out
}

// lookup devuelve el campo con tag json `name` normalizado para graphql:
// ObjectID como hex, punteros nil como nil y tipos string propios como string.
func lookup(src any, name string) any {
	v := reflect.ValueOf(src)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		tag, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if tag == name {
			return normalize(v.Field(i))
		}
	}
	return nil
}

func normalize(f reflect.Value) any {
	if f.Kind() == reflect.Pointer {
		if f.IsNil() {
			return nil
		}
		f = f.Elem()
	}

	switch val := f.Interface().(type) {
	case primitive.ObjectID:
		return val.Hex()
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return val
	}

	switch f.Kind() {
	case reflect.String:
		return f.String()
	case reflect.Map:
		// progress: se expone como lista skill/score
		if f.Type().Key().Kind() == reflect.String {
			out := make([]map[string]any, 0, f.Len())
			iter := f.MapRange()
			for iter.Next() {
				out = append(out, map[string]any{"skill": iter.Key().String(), "score": iter.Value().Interface()})
			}
			return out
		}
	}
	return f.Interface()
}
