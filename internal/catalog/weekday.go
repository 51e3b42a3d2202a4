package catalog

// Weekday codes follow time.Weekday numbering: "0" is Sunday.
var weekdays = []Option{
	{Value: "0", Label: "Domingo"},
	{Value: "1", Label: "Segunda-feira"},
	{Value: "2", Label: "Terça-feira"},
	{Value: "3", Label: "Quarta-feira"},
	{Value: "4", Label: "Quinta-feira"},
	{Value: "5", Label: "Sexta-feira"},
	{Value: "6", Label: "Sábado"},
}

const (
	DefaultFromWeekDay = "1"
	DefaultToWeekDay   = "5"
)

func Weekdays() []Option {
	out := make([]Option, len(weekdays))
	copy(out, weekdays)
	return out
}

func IsWeekday(code string) bool {
	for _, w := range weekdays {
		if w.Value == code {
			return true
		}
	}
	return false
}
