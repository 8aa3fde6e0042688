package xmltv

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// miniDTD declares the subset of the XMLTV grammar the feed emits.
const miniDTD = `
<!ELEMENT tv (channel*, programme*)>
<!ELEMENT channel (display-name+, url*)>
<!ELEMENT display-name (#PCDATA)>
<!ELEMENT url (#PCDATA)>
<!ELEMENT programme (title+, desc*, category*, episode-num*)>
<!ELEMENT title (#PCDATA)>
<!ELEMENT desc (#PCDATA)>
<!ELEMENT category (#PCDATA)>
<!ELEMENT episode-num (#PCDATA)>
`

func writeDTD(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xmltv.dtd")
	require.NoError(t, os.WriteFile(path, []byte(miniDTD), 0o644))
	return path
}

func renderValid(t *testing.T) []byte {
	t.Helper()
	tv, err := Convert(testEntries(t), testMeta())
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, Write(tv, &buf))
	return buf.Bytes()
}

func TestValidateAgainstDTDAcceptsOwnOutput(t *testing.T) {
	assert.NoError(t, ValidateAgainstDTD(renderValid(t), writeDTD(t)))
}

func TestValidateAgainstDTDUndeclaredElement(t *testing.T) {
	doc := []byte(`<tv><channel id="c"><display-name>C</display-name></channel>` +
		`<bogus/></tv>`)

	var valErr *ValidationError
	err := ValidateAgainstDTD(doc, writeDTD(t))
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Violations[0], "<bogus>")
}

func TestValidateAgainstDTDBatchesViolations(t *testing.T) {
	// Missing channel id, malformed start timestamp, missing stop, out of
	// order children and a missing title, all in one document.
	doc := []byte(`<tv>` +
		`<channel><display-name>C</display-name></channel>` +
		`<programme start="not-a-timestamp" channel="c">` +
		`<category lang="hr">Film</category>` +
		`<desc lang="hr">d</desc>` +
		`</programme>` +
		`</tv>`)

	var valErr *ValidationError
	err := ValidateAgainstDTD(doc, writeDTD(t))
	require.ErrorAs(t, err, &valErr)
	require.GreaterOrEqual(t, len(valErr.Violations), 4)

	joined := err.Error()
	assert.Contains(t, joined, "channel element without id attribute")
	assert.Contains(t, joined, "malformed start timestamp")
	assert.Contains(t, joined, "missing stop attribute")
	assert.Contains(t, joined, "element <desc> out of order")
	assert.Contains(t, joined, "missing title element")
}

func TestValidateAgainstDTDWrongRoot(t *testing.T) {
	doc := []byte(`<programme start="20240305200000 +0100" stop="20240305203000 +0100" channel="c">` +
		`<title lang="hr">x</title></programme>`)

	var valErr *ValidationError
	err := ValidateAgainstDTD(doc, writeDTD(t))
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, err.Error(), "expected <tv>")
}

func TestValidateAgainstDTDEpisodeNumSystem(t *testing.T) {
	doc := []byte(`<tv><channel id="c"><display-name>C</display-name></channel>` +
		`<programme start="20240305200000 +0100" stop="20240305203000 +0100" channel="c">` +
		`<title lang="hr">x</title><episode-num>12</episode-num>` +
		`</programme></tv>`)

	var valErr *ValidationError
	err := ValidateAgainstDTD(doc, writeDTD(t))
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, err.Error(), "episode-num without system attribute")
}

func TestValidateAgainstDTDMissingGrammarFile(t *testing.T) {
	err := ValidateAgainstDTD(renderValid(t), filepath.Join(t.TempDir(), "absent.dtd"))
	assert.Error(t, err)
}
