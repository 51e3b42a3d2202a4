package catalog

// Option is a selectable value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var specialties = []Option{
	{Value: "alergologia", Label: "Alergologia"},
	{Value: "anestesiologia", Label: "Anestesiologia"},
	{Value: "angiologia", Label: "Angiologia"},
	{Value: "cardiologia", Label: "Cardiologia"},
	{Value: "cirurgia-geral", Label: "Cirurgia geral"},
	{Value: "clinica-medica", Label: "Clínica médica"},
	{Value: "dermatologia", Label: "Dermatologia"},
	{Value: "endocrinologia", Label: "Endocrinologia"},
	{Value: "gastroenterologia", Label: "Gastroenterologia"},
	{Value: "geriatria", Label: "Geriatria"},
	{Value: "ginecologia", Label: "Ginecologia e obstetrícia"},
	{Value: "hematologia", Label: "Hematologia"},
	{Value: "infectologia", Label: "Infectologia"},
	{Value: "mastologia", Label: "Mastologia"},
	{Value: "nefrologia", Label: "Nefrologia"},
	{Value: "neurologia", Label: "Neurologia"},
	{Value: "nutrologia", Label: "Nutrologia"},
	{Value: "oftalmologia", Label: "Oftalmologia"},
	{Value: "oncologia", Label: "Oncologia"},
	{Value: "ortopedia", Label: "Ortopedia e traumatologia"},
	{Value: "otorrinolaringologia", Label: "Otorrinolaringologia"},
	{Value: "pediatria", Label: "Pediatria"},
	{Value: "pneumologia", Label: "Pneumologia"},
	{Value: "psiquiatria", Label: "Psiquiatria"},
	{Value: "radiologia", Label: "Radiologia"},
	{Value: "reumatologia", Label: "Reumatologia"},
	{Value: "urologia", Label: "Urologia"},
}

// Specialties returns the allowed medical specialty codes in display order.
func Specialties() []Option {
	out := make([]Option, len(specialties))
	copy(out, specialties)
	return out
}

func IsSpecialty(code string) bool {
	for _, s := range specialties {
		if s.Value == code {
			return true
		}
	}
	return false
}
