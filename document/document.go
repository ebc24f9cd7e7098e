// Package document reads and writes the structured-text records of a score
// (movements, metadata, style, synthesis) as YAML, filling defaults for
// fields a file leaves out.
package document

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"path/filepath"

	"github.com/jsphweid/scof/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTitle = "Untitled Score"
	DefaultTime  = "4/4"
	DefaultTempo = 120
	DefaultSwing = 50
)

//go:embed default_movement.yaml
var defaultMovement []byte

// DefaultMovement is a single 4/4 bar with one channel resting.
func DefaultMovement() model.Movement {
	m, err := ReadMovement(bytes.NewReader(defaultMovement))
	if err != nil {
		panic("embedded default movement is invalid: " + err.Error())
	}
	return m
}

// NewScore is an untitled score with one default movement and instrument.
func NewScore() model.Score {
	return model.Score{
		Title:     DefaultTitle,
		Meta:      model.DefaultMeta(),
		Movement:  []model.Movement{DefaultMovement()},
		SoundFont: []model.Instrument{{}},
	}
}

func decode[T any](r io.Reader, v *T) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func encode(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func ReadMovement(r io.Reader) (model.Movement, error) {
	var m model.Movement
	if err := decode(r, &m); err != nil {
		return m, errors.Wrap(err, "could not decode movement")
	}
	for i := range m.Sig {
		if m.Sig[i].Time == "" {
			m.Sig[i].Time = DefaultTime
		}
		if m.Sig[i].Tempo == 0 {
			m.Sig[i].Tempo = DefaultTempo
		}
	}
	for i := range m.Bar {
		for j := range m.Bar[i].Chan {
			if m.Bar[i].Chan[j].Notes == nil {
				m.Bar[i].Chan[j] = model.NewChan()
			}
		}
	}
	return m, nil
}

func WriteMovement(w io.Writer, m model.Movement) error {
	return errors.Wrap(encode(w, m), "could not encode movement")
}

// ReadMeta leaves the composer as "Anonymous" when the file has none.
func ReadMeta(r io.Reader) (model.Meta, error) {
	m := model.DefaultMeta()
	if err := decode(r, &m); err != nil {
		return m, errors.Wrap(err, "could not decode meta")
	}
	return m, nil
}

func WriteMeta(w io.Writer, m model.Meta) error {
	return errors.Wrap(encode(w, m), "could not encode meta")
}

func ReadStyle(r io.Reader) (model.Style, error) {
	var s model.Style
	err := decode(r, &s)
	return s, errors.Wrap(err, "could not decode style")
}

func WriteStyle(w io.Writer, s model.Style) error {
	return errors.Wrap(encode(w, s), "could not encode style")
}

func ReadSynth(r io.Reader) (model.Synth, error) {
	var s model.Synth
	err := decode(r, &s)
	return s, errors.Wrap(err, "could not decode synth")
}

func WriteSynth(w io.Writer, s model.Synth) error {
	return errors.Wrap(encode(w, s), "could not encode synth")
}

// Swing is the signature's swing percentage.
func Swing(s model.Sig) uint8 {
	if s.Swing == nil {
		return DefaultSwing
	}
	return *s.Swing
}

func LoadMovement(path string) (model.Movement, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Movement{}, errors.Wrap(err, "could not open movement")
	}
	defer f.Close()
	return ReadMovement(f)
}

// SaveMovement writes through a temporary file so a failed write keeps the
// old movement.
func SaveMovement(path string, m model.Movement) error {
	var buf bytes.Buffer
	if err := WriteMovement(&buf, m); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".movement-*")
	if err != nil {
		return errors.Wrap(err, "could not create temp file")
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return errors.Wrap(err, "could not write movement")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "could not write movement")
	}
	return errors.Wrap(os.Rename(tmp.Name(), path), "could not replace movement")
}

// LoadScore wraps a single movement file in an otherwise default score.
func LoadScore(path string) (*model.Score, error) {
	m, err := LoadMovement(path)
	if err != nil {
		return nil, err
	}
	s := NewScore()
	s.Movement = []model.Movement{m}
	return &s, nil
}
