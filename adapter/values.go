package adapter

import (
	"time"

	pandagraph "github.com/syssam/pandagraph"
	"github.com/syssam/pandagraph/model"
)

// FieldValue converts a record field to the value a property resolves to:
//
//   - every integer width becomes int64, floats become float64
//   - time.Time becomes an RFC 3339 string, model.Date a YYYY-MM-DD string
//   - enums become their lowercase token ("unknown" for unrecognized members)
//   - nil pointers become nil, other pointers are dereferenced
//
// Any other type panics with a ContractError.
func FieldValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string, bool, int64, float64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return float64(x)
	case time.Time:
		return x.Format(time.RFC3339)
	case model.Date:
		return x.String()
	case model.Tier:
		return x.Token()
	case model.MatchType:
		return x.Token()
	case model.MatchStatus:
		return x.Token()
	case *string:
		return optional(x)
	case *bool:
		return optional(x)
	case *int:
		return optional(x)
	case *uint64:
		return optional(x)
	case *time.Time:
		return optional(x)
	case *model.Date:
		return optional(x)
	case *model.Tier:
		return optional(x)
	default:
		pandagraph.Unreachable("unsupported property value of type %T", v)
		return nil
	}
}

func optional[T any](p *T) any {
	if p == nil {
		return nil
	}
	return FieldValue(*p)
}
