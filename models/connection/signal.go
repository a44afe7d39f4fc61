package connection

const (
	CodeSpectateWelcome uint8 = iota
	CodeShot
	CodeGameOver
	CodeNoGame

	// spectators are read-only, anything they send is answered with this
	CodeReadOnly
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
