package formatting

import "fmt"

// FormatPrice форматирует сумму в долларах
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatPriceShort форматирует сумму без центов, если они равны 0
func FormatPriceShort(amount float64) string {
	if amount == float64(int64(amount)) {
		return fmt.Sprintf("$%d", int64(amount))
	}
	return FormatPrice(amount)
}
