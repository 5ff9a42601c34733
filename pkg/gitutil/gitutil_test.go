package gitutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner scripts git responses per subcommand and counts invocations.
type fakeRunner struct {
	calls     int
	responses map[string]string
	errs      map[string]error
}

func (r *fakeRunner) run(dir string, args ...string) (string, error) {
	r.calls++
	key := args[0]
	if err, ok := r.errs[key]; ok {
		return "", err
	}
	return r.responses[key], nil
}

func TestIsRepository(t *testing.T) {
	yes := &fakeRunner{responses: map[string]string{"rev-parse": "true\n"}}
	assert.True(t, NewClientWithRunner(".", yes.run).IsRepository())

	no := &fakeRunner{errs: map[string]error{"rev-parse": errors.New("not a repo")}}
	assert.False(t, NewClientWithRunner(".", no.run).IsRepository())
}

func TestIsIgnoredMemoized(t *testing.T) {
	r := &fakeRunner{responses: map[string]string{}}
	c := NewClientWithRunner(".", r.run)

	assert.True(t, c.IsIgnored("secrets.env"))
	assert.True(t, c.IsIgnored("secrets.env"))
	assert.Equal(t, 1, r.calls)
}

func TestIsIgnoredSafeDefault(t *testing.T) {
	r := &fakeRunner{errs: map[string]error{"check-ignore": errors.New("exit 1")}}
	c := NewClientWithRunner(".", r.run)

	assert.False(t, c.IsIgnored("main.go"))
	// The negative answer is cached too.
	assert.False(t, c.IsIgnored("main.go"))
	assert.Equal(t, 1, r.calls)
}

func TestIsTracked(t *testing.T) {
	r := &fakeRunner{responses: map[string]string{"ls-files": "old.env\n"}}
	c := NewClientWithRunner(".", r.run)

	assert.True(t, c.IsTracked("old.env"))

	failing := &fakeRunner{errs: map[string]error{"ls-files": errors.New("exit 1")}}
	assert.False(t, NewClientWithRunner(".", failing.run).IsTracked("gone.env"))
}

func TestListHistoricalPaths(t *testing.T) {
	r := &fakeRunner{responses: map[string]string{
		"log": "old.env\nsrc/app.py\n\nold.env\nconfig.yaml\n",
	}}
	c := NewClientWithRunner(".", r.run)

	paths := c.ListHistoricalPaths()
	require.Equal(t, []string{"old.env", "src/app.py", "config.yaml"}, paths)
}

func TestListHistoricalPathsError(t *testing.T) {
	r := &fakeRunner{errs: map[string]error{"log": errors.New("no commits")}}
	c := NewClientWithRunner(".", r.run)

	assert.Nil(t, c.ListHistoricalPaths())
}

func TestLastBlobRef(t *testing.T) {
	r := &fakeRunner{responses: map[string]string{"rev-list": "abc123\n"}}
	c := NewClientWithRunner(".", r.run)
	assert.Equal(t, "abc123:old.env", c.LastBlobRef("old.env"))

	empty := &fakeRunner{responses: map[string]string{"rev-list": "\n"}}
	assert.Equal(t, "", NewClientWithRunner(".", empty.run).LastBlobRef("old.env"))

	failing := &fakeRunner{errs: map[string]error{"rev-list": errors.New("bad object")}}
	assert.Equal(t, "", NewClientWithRunner(".", failing.run).LastBlobRef("old.env"))
}

func TestReadBlob(t *testing.T) {
	r := &fakeRunner{responses: map[string]string{"show": "PASSWORD=hunter2\nAPI_KEY=abc"}}
	c := NewClientWithRunner(".", r.run)

	lines, err := c.ReadBlob("abc123:old.env")
	require.NoError(t, err)
	assert.Equal(t, []string{"PASSWORD=hunter2", "API_KEY=abc"}, lines)

	failing := &fakeRunner{errs: map[string]error{"show": errors.New("bad object")}}
	_, err = NewClientWithRunner(".", failing.run).ReadBlob("abc123:old.env")
	assert.Error(t, err)
}
