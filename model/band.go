package model

// FrequencyBand is a band allocation entry.
type FrequencyBand struct {
	Name        string
	Designation string // e.g. "UHF", "S", "X"

	UplinkMinHz   float64
	UplinkMaxHz   float64
	DownlinkMinHz float64
	DownlinkMaxHz float64

	TypicalEIRPDBW float64
	MaxBandwidthHz float64
	Notes          string
}

// ContainsDownlink reports whether freqHz falls inside the downlink
// allocation. A zero-valued allocation contains nothing.
func (b FrequencyBand) ContainsDownlink(freqHz float64) bool {
	return b.DownlinkMaxHz > 0 && freqHz >= b.DownlinkMinHz && freqHz <= b.DownlinkMaxHz
}

// ContainsUplink reports whether freqHz falls inside the uplink
// allocation.
func (b FrequencyBand) ContainsUplink(freqHz float64) bool {
	return b.UplinkMaxHz > 0 && freqHz >= b.UplinkMinHz && freqHz <= b.UplinkMaxHz
}
