package ftm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropertyRangeAndReverse(t *testing.T) {
	model := loadModel(t)
	person := mustSchema(t, model, "Person")
	occupancy := mustSchema(t, model, "Occupancy")

	t.Run("range resolves declared schema", func(t *testing.T) {
		prop := person.Property("positionOccupancies")
		require.NotNil(t, prop)
		assert.Same(t, occupancy, prop.Range())
		assert.True(t, prop.IsEntity())
		assert.Same(t, person, prop.Schema())
	})

	t.Run("no range declared", func(t *testing.T) {
		name := person.Property("name")
		assert.Nil(t, name.Range())
		assert.Nil(t, name.Reverse())
		assert.False(t, name.IsEntity())
	})

	t.Run("reverse points back", func(t *testing.T) {
		holder := occupancy.Property("holder")
		reverse := holder.Reverse()
		require.NotNil(t, reverse)
		assert.Equal(t, "Person:positionOccupancies", reverse.QName)
		assert.Same(t, holder, reverse.Reverse())
	})

	t.Run("dangling reverse is tolerated", func(t *testing.T) {
		org := mustSchema(t, model, "Position").Property("organization")
		assert.NotNil(t, org.Range())
		assert.Nil(t, org.Reverse())

		relative := mustSchema(t, model, "Family").Property("relative")
		assert.Nil(t, relative.Reverse())
	})

	t.Run("inherited property keeps its declaring schema", func(t *testing.T) {
		assert.Equal(t, "Thing", person.Property("name").Schema().Name)
		assert.Equal(t, "Thing:name", person.Property("name").String())
	})
}

func TestPropertyTypeCaption(t *testing.T) {
	model := loadModel(t)
	country, err := model.Type("country")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"known code", "us", "United States"},
		{"unknown code", "xk", "xk"},
		{"empty input", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, country.Caption(tt.value))
		})
	}

	t.Run("open types echo values", func(t *testing.T) {
		date, err := model.Type("date")
		require.NoError(t, err)
		assert.Equal(t, "2021-01-01", date.Caption("2021-01-01"))
		assert.Nil(t, date.Values())
	})

	t.Run("values are a copy", func(t *testing.T) {
		values := country.Values()
		values["us"] = "changed"
		assert.Equal(t, "United States", country.Caption("us"))
	})

	t.Run("only the entity type is an entity", func(t *testing.T) {
		entity, err := model.Type(EntityType)
		require.NoError(t, err)
		assert.True(t, entity.IsEntity())
		assert.True(t, entity.Pivot)
		assert.False(t, country.IsEntity())
	})
}
