package fitness

// BMI is weight / height(m)², rounded to two decimals. Display only, scoring uses the raw value.
func BMI(heightCm, weightKg float64) float64 {
	return Round2(rawBMI(heightCm, weightKg))
}

func rawBMI(heightCm, weightKg float64) float64 {
	h := heightCm / 100
	return weightKg / (h * h)
}
