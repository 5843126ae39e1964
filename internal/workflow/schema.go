package workflow

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sketch reduces a stored document to a type-only outline: field names
// kept, every leaf value replaced by its type name, arrays represented by
// their first element. The Q&A agent reads this instead of real candidate
// data, so no personal information leaks into the system prompt.
func Sketch(doc bson.M) map[string]any {
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		out[key] = sketchValue(value)
	}
	return out
}

func sketchValue(value any) any {
	switch v := value.(type) {
	case nil:
		return "null"
	case bson.M:
		return Sketch(v)
	case map[string]any:
		return Sketch(v)
	case bson.D:
		return Sketch(v.Map())
	case bson.A:
		if len(v) == 0 {
			return []any{}
		}
		return []any{sketchValue(v[0])}
	case []any:
		if len(v) == 0 {
			return []any{}
		}
		return []any{sketchValue(v[0])}
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int32, int64:
		return "int"
	case float32, float64:
		return "double"
	case primitive.ObjectID:
		return "objectId"
	case primitive.DateTime:
		return "date"
	default:
		return fmt.Sprintf("%T", v)
	}
}
