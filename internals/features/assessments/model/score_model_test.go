package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestScoreForeignKeysRestrictDelete(t *testing.T) {
	s, err := schema.Parse(&ScoreModel{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	cases := map[string]string{
		"Criteria": "score_criteria_id",
		"Rubric":   "score_rubric_id",
	}
	for field, column := range cases {
		rel, ok := s.Relationships.Relations[field]
		require.True(t, ok, field)

		c := rel.ParseConstraint()
		require.NotNil(t, c, field)
		assert.Equal(t, "RESTRICT", c.OnDelete, field)
		require.Len(t, c.ForeignKeys, 1)
		assert.Equal(t, column, c.ForeignKeys[0].DBName)
	}
}
