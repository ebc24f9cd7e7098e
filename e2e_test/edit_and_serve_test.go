//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/scof/cmd"
	"github.com/jsphweid/scof/document"
	"github.com/jsphweid/scof/midi"
	"github.com/jsphweid/scof/model"
	"github.com/jsphweid/scof/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var movementPath string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "scof-e2e")
	if err != nil {
		panic(err.Error())
	}
	movementPath = filepath.Join(dir, "movement.yaml")
	if err := document.SaveMovement(movementPath, document.DefaultMovement()); err != nil {
		panic(err.Error())
	}

	exitVal := m.Run()

	os.RemoveAll(dir)
	os.Exit(exitVal)
}

func post(t *testing.T, url, contentType string, body io.Reader) *http.Response {
	t.Helper()
	res, err := http.Post(url, contentType, body)
	require.NoError(t, err)
	return res
}

func send(t *testing.T, method, url, body string) model.SessionResponse {
	t.Helper()
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Less(t, res.StatusCode, 300)

	var sr model.SessionResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&sr))
	return sr
}

func readAll(t *testing.T, url string) []byte {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return data
}

// The same edits through the CLI and through a session end in the same
// movement and the same MIDI file.
func TestCommandLineAndServerAgree(t *testing.T) {
	assert := assert.New(t)
	var out bytes.Buffer
	for _, args := range [][]string{
		{"edit", "insert", movementPath, "4C4"},
		{"edit", "insert", "-k", "1", movementPath, "4E4."},
		{"edit", "step", "-k", "2", movementPath, "up"},
		{"edit", "duration", "-k", "0", "--index", "6", movementPath},
		{"edit", "new-measure", "-k", "0", movementPath},
	} {
		require.NoError(t, cmd.Run(args, &out), args)
	}
	require.NoError(t, cmd.Run([]string{"check", movementPath}, &out), out.String())

	ts := httptest.NewServer(server.New(nil).Handler())
	defer ts.Close()

	res := post(t, ts.URL+"/sessions", "application/yaml", bytes.NewReader(nil))
	var sr model.SessionResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&sr))
	res.Body.Close()
	base := ts.URL + "/sessions/" + sr.ID

	send(t, "POST", base+"/insert", `{"marking":"4C4"}`)
	send(t, "POST", base+"/right", "")
	send(t, "POST", base+"/insert", `{"marking":"4E4."}`)
	sr = send(t, "POST", base+"/right", "")
	assert.Equal(2, sr.Cursor.Marking)
	sr = send(t, "POST", base+"/step/up", "")
	assert.Equal("4F4.", sr.Current.Marking)
	send(t, "POST", base+"/left", "")
	send(t, "POST", base+"/left", "")
	sr = send(t, "PUT", base+"/duration", `{"index":6}`)
	assert.Equal("2R", sr.Current.Marking)
	sr = send(t, "POST", base+"/measures", "")
	assert.Equal(2, sr.Measures)

	want, err := os.ReadFile(movementPath)
	require.NoError(t, err)
	assert.Equal(string(want), string(readAll(t, base+"/movement")))

	served := readAll(t, base+"/midi")
	m, err := document.LoadMovement(movementPath)
	require.NoError(t, err)
	var exported bytes.Buffer
	require.NoError(t, midi.WriteMovement(&exported, m))
	assert.Equal(exported.Bytes(), served)

	s, err := midi.ReadMidi(bytes.NewReader(served))
	require.NoError(t, err)
	assert.Len(s.Tracks, 2)
}
