package positions

// Type is the closed set of position families with a dedicated rubric.
// TypeGeneric covers every other position name.
type Type int

const (
	TypeGeneric Type = iota
	TypeServiceTechnician
	TypeLeadTechnician
	TypeDispatcher
	TypeAdminAssistant
	TypeCustomerServiceRep
	TypeApprentice
	TypeBookkeeper
	TypeWarehouseAssociate
	TypeSalesRep
)

var typeNames = map[Type]string{
	TypeGeneric:            "generic",
	TypeServiceTechnician:  "service_technician",
	TypeLeadTechnician:     "lead_technician",
	TypeDispatcher:         "dispatcher",
	TypeAdminAssistant:     "admin_assistant",
	TypeCustomerServiceRep: "customer_service_rep",
	TypeApprentice:         "apprentice",
	TypeBookkeeper:         "bookkeeper",
	TypeWarehouseAssociate: "warehouse_associate",
	TypeSalesRep:           "sales_rep",
}

// String returns a stable identifier for logs and CLI output.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// dispatch maps posted position names to rubric families. Matching is exact:
// no trimming or case folding.
var dispatch = map[string]Type{
	"HVAC Service Technician":         TypeServiceTechnician,
	"HVAC Technician":                 TypeServiceTechnician,
	"Service Technician":              TypeServiceTechnician,
	"Lead HVAC Technician":            TypeLeadTechnician,
	"Lead HVAC Service Technician":    TypeLeadTechnician,
	"HVAC Dispatcher":                 TypeDispatcher,
	"Dispatcher":                      TypeDispatcher,
	"Administrative Assistant":        TypeAdminAssistant,
	"Admin Assistant":                 TypeAdminAssistant,
	"Customer Service Representative": TypeCustomerServiceRep,
	"CSR":                             TypeCustomerServiceRep,
	"HVAC Apprentice":                 TypeApprentice,
	"Apprentice":                      TypeApprentice,
	"Bookkeeper":                      TypeBookkeeper,
	"Warehouse Associate":             TypeWarehouseAssociate,
	"HVAC Sales Representative":       TypeSalesRep,
	"Sales Representative":            TypeSalesRep,
}

// TypeOf resolves a posted position name to its rubric family.
func TypeOf(positionName string) Type {
	if t, ok := dispatch[positionName]; ok {
		return t
	}
	return TypeGeneric
}

// RubricTypes returns every family that has a dedicated rubric.
func RubricTypes() []Type {
	return []Type{
		TypeServiceTechnician,
		TypeLeadTechnician,
		TypeDispatcher,
		TypeAdminAssistant,
		TypeCustomerServiceRep,
		TypeApprentice,
		TypeBookkeeper,
		TypeWarehouseAssociate,
		TypeSalesRep,
	}
}
