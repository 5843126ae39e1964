package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSketchFlattensLeavesToTypes(t *testing.T) {
	doc := bson.M{
		"_id":         primitive.NewObjectID(),
		"name":        "Ada",
		"final_score": 87.5,
		"age":         int32(31),
		"active":      true,
		"missing":     nil,
	}

	sketch := Sketch(doc)

	assert.Equal(t, "objectId", sketch["_id"])
	assert.Equal(t, "string", sketch["name"])
	assert.Equal(t, "double", sketch["final_score"])
	assert.Equal(t, "int", sketch["age"])
	assert.Equal(t, "bool", sketch["active"])
	assert.Equal(t, "null", sketch["missing"])
}

func TestSketchRecursesIntoDocumentsAndArrays(t *testing.T) {
	doc := bson.M{
		"resume": bson.M{
			"personal_info": bson.M{"email": "ada@example.com"},
			"skills": bson.M{
				"hard_skills": bson.A{"Go", "Python"},
			},
			"education": bson.A{
				bson.M{"degree": "B.Sc", "university_tier": int64(1)},
				bson.M{"degree": "M.Sc"},
			},
		},
		"tags": bson.A{},
	}

	sketch := Sketch(doc)

	resume, ok := sketch["resume"].(map[string]any)
	require.True(t, ok)

	info, ok := resume["personal_info"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", info["email"], "values are replaced, never copied")

	skills := resume["skills"].(map[string]any)
	assert.Equal(t, []any{"string"}, skills["hard_skills"], "arrays collapse to one element")

	education, ok := resume["education"].([]any)
	require.True(t, ok)
	require.Len(t, education, 1)
	first := education[0].(map[string]any)
	assert.Equal(t, "string", first["degree"])
	assert.Equal(t, "int", first["university_tier"])

	assert.Equal(t, []any{}, sketch["tags"])
}
