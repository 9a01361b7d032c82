package positions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteriaKnownPositions(t *testing.T) {
	names := Names()
	require.Len(t, names, 13)
	for _, name := range names {
		c := Criteria(name)
		assert.Equal(t, name, c.Title)
		assert.NotEmpty(t, c.KeySkills, name)
		assert.NotEmpty(t, c.ExperienceGuidelines, name)
		assert.True(t, Known(name))
	}
}

func TestCriteriaFallsBackToTechnician(t *testing.T) {
	for _, name := range []string{"", "Plumber", "hvac technician", " HVAC Technician"} {
		c := Criteria(name)
		assert.Equal(t, DefaultPosition, c.Title, "name %q", name)
		assert.False(t, Known(name))
	}
}

func TestCriteriaReturnsCopy(t *testing.T) {
	c := Criteria("Bookkeeper")
	c.KeySkills[0] = "changed"
	assert.NotEqual(t, "changed", Criteria("Bookkeeper").KeySkills[0])
}

func TestTypeOfExactMatch(t *testing.T) {
	tests := []struct {
		name string
		want Type
	}{
		{"HVAC Service Technician", TypeServiceTechnician},
		{"HVAC Technician", TypeServiceTechnician},
		{"Lead HVAC Technician", TypeLeadTechnician},
		{"HVAC Dispatcher", TypeDispatcher},
		{"Administrative Assistant", TypeAdminAssistant},
		{"Customer Service Representative", TypeCustomerServiceRep},
		{"HVAC Apprentice", TypeApprentice},
		{"Bookkeeper", TypeBookkeeper},
		{"Warehouse Associate", TypeWarehouseAssociate},
		{"HVAC Sales Representative", TypeSalesRep},
		{"HVAC Installer", TypeGeneric},
		{"HVAC Service Manager", TypeGeneric},
		{"hvac dispatcher", TypeGeneric},
		{"HVAC Dispatcher ", TypeGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.name))
		})
	}
}

func TestRubricTypesExcludeGeneric(t *testing.T) {
	types := RubricTypes()
	assert.Len(t, types, 9)
	for _, typ := range types {
		assert.NotEqual(t, TypeGeneric, typ)
		assert.NotEqual(t, "unknown", typ.String())
	}
}
