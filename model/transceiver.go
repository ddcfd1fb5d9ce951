package model

// Transceiver is a satellite radio datasheet. Entries carry the
// manufacturer's advertised figures; mission configs may override them.
type Transceiver struct {
	Name         string
	Manufacturer string

	FrequencyHz      float64
	TxPowerDBm       float64
	RxSensitivityDBm float64
	DataRateBps      float64
	Modulation       string

	MassKg            float64
	PowerConsumptionW float64
}
