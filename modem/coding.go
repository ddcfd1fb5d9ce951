// modem/coding.go
package modem

import (
	"fmt"

	"github.com/signalsfoundry/satlink-simulator/core"
)

// Coding describes a forward error correction scheme by its rate and its
// coding gain at BER 1e-5.
type Coding struct {
	Name     string
	CodeRate float64
	GainDB   float64
}

var (
	Uncoded  = Coding{Name: "Uncoded", CodeRate: 1.0, GainDB: 0}
	ConvR12  = Coding{Name: "Conv R=1/2 K=7", CodeRate: 0.5, GainDB: 5.0}
	TurboR12 = Coding{Name: "Turbo R=1/2", CodeRate: 0.5, GainDB: 8.0}
	LDPCR12  = Coding{Name: "LDPC R=1/2", CodeRate: 0.5, GainDB: 7.5}
	LDPCR34  = Coding{Name: "LDPC R=3/4", CodeRate: 0.75, GainDB: 6.0}
	LDPCR78  = Coding{Name: "LDPC R=7/8", CodeRate: 0.875, GainDB: 5.0}
)

// CodingByName resolves the mission-file spelling of a coding scheme.
func CodingByName(name string) (Coding, error) {
	switch name {
	case "uncoded":
		return Uncoded, nil
	case "convolutional_r12":
		return ConvR12, nil
	case "turbo_r12":
		return TurboR12, nil
	case "ldpc_r12":
		return LDPCR12, nil
	case "ldpc_r34":
		return LDPCR34, nil
	case "ldpc_r78":
		return LDPCR78, nil
	}
	return Coding{}, fmt.Errorf("%w: unknown coding %q (known: uncoded, convolutional_r12, turbo_r12, ldpc_r12, ldpc_r34, ldpc_r78)",
		core.ErrConfiguration, name)
}
