package audio

const (
	DefaultSampleRate = 16000
	DefaultFormat     = FormatLinear16
)

// EncodingInfo describes the raw audio format exchanged between capture,
// recognition and playback.
type EncodingInfo struct {
	SampleRate int
	Format     Format
}

func DefaultEncodingInfo() EncodingInfo {
	return EncodingInfo{SampleRate: DefaultSampleRate, Format: DefaultFormat}
}

func (e EncodingInfo) IsZero() bool {
	return e.SampleRate == 0 || e.Format.Name() == ""
}

type Format string

const (
	FormatLinear16 Format = "linear16"
	FormatMulaw    Format = "mulaw"
	FormatALaw     Format = "alaw"
)

func (f Format) Name() string {
	return string(f)
}

func (f Format) ByteSize() int {
	switch f {
	case FormatMulaw, FormatALaw:
		return 1
	case FormatLinear16:
		return 2
	}
	return -1
}
