package schema

// Users has only an identity in this service.
var Users = Table{
	Name: "users",
	Columns: []Column{
		{Name: "id", Type: TypeUUID, Default: DefaultRandomUUID, Key: KeyPrimary},
	},
}

// Clinics.updated_at is nullable and refreshed by the store on every update.
var Clinics = Table{
	Name: "clinics",
	Columns: []Column{
		{Name: "id", Type: TypeUUID, Default: DefaultRandomUUID, Key: KeyPrimary},
		{Name: "name", Type: TypeText},
		{Name: "created_at", Type: TypeTimestamp, Default: DefaultNow},
		{Name: "updated_at", Type: TypeTimestamp, Nullable: true, Default: DefaultNow, OnUpdate: UpdateNow},
	},
}

// Tables returns every declared table in creation order.
func Tables() []Table {
	return []Table{Users, Clinics}
}
