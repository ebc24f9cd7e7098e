package model

const DefaultComposer = "Anonymous"

type Arranger struct {
	Name     string  `yaml:"name"`
	Ensemble *string `yaml:"ensemble,omitempty"`
}

// Meta is the score's credits.
type Meta struct {
	// "{}"
	Composer string  `yaml:"composer"`
	Subtitle *string `yaml:"subtitle,omitempty"`
	// work number
	Number *uint32 `yaml:"number,omitempty"`
	// "Words by {}"
	Lyricist *string `yaml:"lyricist,omitempty"`
	// "Translated by {}"
	Translator *string `yaml:"translator,omitempty"`
	// "Performed by {}"
	Performers *string `yaml:"performers,omitempty"`
	// "Arranged for {} by {}", in order
	Arranger []Arranger `yaml:"arranger,omitempty"`
	// "Revised by {}"
	Revised  []string `yaml:"revised,omitempty"`
	Licenses []string `yaml:"licenses,omitempty"`
	// difficulty times two, so grade 1.5 is 3
	Grade *uint8 `yaml:"grade,omitempty"`
	// movement names in order
	Movement []string `yaml:"movement,omitempty"`
}

func DefaultMeta() Meta {
	return Meta{Composer: DefaultComposer}
}

// SigStyle is how a signature is rendered.
type SigStyle struct {
	// defaults to "beat = BPM"
	Tempo *string `yaml:"tempo,omitempty"`
	// C for 4/4 and friends
	TimeSymbol bool `yaml:"time_symbol"`
	// defaults to "1/8 1/8 = 1/6 1/12"
	SwingText *string `yaml:"swing_text,omitempty"`
}

type Style struct {
	Sig []SigStyle `yaml:"sig"`
}

type SynthChan struct {
	Waveform []string `yaml:"waveform"`
	Effect   []uint32 `yaml:"effect"`
	// 0-1
	Volume float32 `yaml:"volume"`
}

// Effect is a reverb or other effect preset. IDs are positions in Synth.Effect.
type Effect struct{}

type Synth struct {
	Effect []Effect    `yaml:"effect"`
	Chan   []SynthChan `yaml:"chan"`
}

type Instrument struct {
	Waveform    string  `yaml:"waveform"`
	Mute        *string `yaml:"mute,omitempty"`
	CupMute     *string `yaml:"cup_mute,omitempty"`
	HarmonMute  *string `yaml:"harmon_mute,omitempty"`
	PlungerMute *string `yaml:"plunger_mute,omitempty"`
	Harmonic    *string `yaml:"harmonic,omitempty"`

	// per-dynamic waveform overrides
	PPP *string `yaml:"ppp,omitempty"`
	PP  *string `yaml:"pp,omitempty"`
	P   *string `yaml:"p,omitempty"`
	MP  *string `yaml:"mp,omitempty"`
	MF  *string `yaml:"mf,omitempty"`
	F   *string `yaml:"f,omitempty"`
	FF  *string `yaml:"ff,omitempty"`
	FFF *string `yaml:"fff,omitempty"`
}
