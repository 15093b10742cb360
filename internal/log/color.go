package log

const (
	EscReset   = "\033[0m"
	FontBold   = "\033[1m"
	ColorRed   = "\033[31m"
	ColorGreen = "\033[32m"
	ColorGray  = "\033[37m"
)

func Bold(s string) string {
	return FontBold + s + EscReset
}

func Red(s string) string {
	return ColorRed + s + EscReset
}

func Green(s string) string {
	return ColorGreen + s + EscReset
}

func Gray(s string) string {
	return ColorGray + s + EscReset
}
