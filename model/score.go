package model

// Score is everything in a .scof bundle.
type Score struct {
	// Maximum of 64 characters.
	Title string
	// RVG, SVG, PNG or JPG bytes.
	Cover     []byte
	Meta      Meta
	Style     Style
	Synth     Synth
	SoundFont []Instrument
	Movement  []Movement
}

// Sig is a key/time/tempo signature.
type Sig struct {
	// 0-23 quarter steps above C. 24+ are reserved for middle eastern and
	// Indian key signatures.
	Key uint8 `yaml:"key"`
	// num_beats/note_len, e.g. "4/4"
	Time string `yaml:"time"`
	// beats per minute
	Tempo uint16 `yaml:"tempo"`
	// percent swing, 50 when absent
	Swing *uint8 `yaml:"swing,omitempty"`
}

// Chan is one channel's content within a bar.
type Chan struct {
	Notes []string `yaml:"notes"`
	Lyric []string `yaml:"lyric,omitempty"`
}

// NewChan is a channel holding a single whole rest.
func NewChan() Chan {
	return Chan{Notes: []string{WholeRest}}
}

const WholeRest = "1R"

// Bar is a measure.
type Bar struct {
	// index into Movement.Sig; nil keeps the previous signature
	Sig    *uint32  `yaml:"sig,omitempty"`
	Chan   []Chan   `yaml:"chan"`
	Repeat []string `yaml:"repeat,omitempty"`
}

type Movement struct {
	Sig []Sig `yaml:"sig"`
	Bar []Bar `yaml:"bar"`
}

type Repeat uint8

const (
	// ||:
	RepeatOpen Repeat = iota
	// :||
	RepeatClose
	Segno
	DC
	DS
	Coda
	ToCoda
	Fine
	Ending
)

var repeatNames = []string{"open", "close", "segno", "dc", "ds", "coda", "tocoda", "fine", "ending"}

func (r Repeat) String() string {
	if int(r) >= len(repeatNames) {
		return "unknown"
	}
	return repeatNames[r]
}

func ParseRepeat(s string) (Repeat, bool) {
	for i, name := range repeatNames {
		if name == s {
			return Repeat(i), true
		}
	}
	return 0, false
}
