package domain

type Product struct {
	Code          string  `yaml:"code"`
	Unit          string  `yaml:"unit"`
	WeightPerUnit float64 `yaml:"weight_per_unit"`
}
