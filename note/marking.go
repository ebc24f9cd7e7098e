package note

// Marking is one event in a channel's timeline. Only Note has a text form;
// the other kinds are carried as data.
type Marking interface {
	marking()
}

func (Note) marking() {}

// GraceInto is a grace note leading into the next note.
type GraceInto struct{ Note }

// GraceOutOf is a grace note leaving the previous note.
type GraceOutOf struct{ Note }

type Dynamic uint8

const (
	PPPPPP Dynamic = iota
	PPPPP
	PPPP
	PPP
	PP
	P
	MP
	MF
	F
	FF
	FFF
	FFFF
	FFFFF
	FFFFFF
	N
	SF
	SFZ
	FP
	SFP
)

// Event is a marking without pitch or duration.
type Event uint8

const (
	Breath Event = iota
	CaesuraShort
	CaesuraLong
	Cresc
	Dim
	Pizz
	Arco
	MuteOn
	MuteOff
	Repeat
)

func (GraceInto) marking()  {}
func (GraceOutOf) marking() {}
func (Dynamic) marking()    {}
func (Event) marking()      {}

// ParseMarking reads marking text. Every marking with a text form is a Note.
func ParseMarking(s string) (Marking, error) {
	n, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return n, nil
}
