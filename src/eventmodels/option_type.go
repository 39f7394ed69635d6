package eventmodels

import "fmt"

type OptionType string

func (o OptionType) Validate() error {
	if o != Call && o != Put {
		return fmt.Errorf("OptionType: Validate: invalid option type: %s", o)
	}

	return nil
}

const (
	Call OptionType = "Call"
	Put  OptionType = "Put"
)

func NewOptionTypeFromCode(code string) (OptionType, error) {
	switch code {
	case "C", "Call", "call":
		return Call, nil
	case "P", "Put", "put":
		return Put, nil
	default:
		return "", fmt.Errorf("NewOptionTypeFromCode: invalid option type code: %q", code)
	}
}
