package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	thesisModel "skripsiku_backend/internals/features/theses/theses/model"
)

func TestSeedDataMatchesStatusModel(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, s := range d.ThesisStatuses {
		names[s.Name] = true
		assert.Equal(t, thesisModel.IsTerminalStatus(s.Name), s.Terminal, s.Name)
	}
	for _, want := range []string{
		thesisModel.StatusDiajukan, thesisModel.StatusBimbingan, thesisModel.StatusSeminar,
		thesisModel.StatusSidang, thesisModel.StatusLulus, thesisModel.StatusSelesai,
		thesisModel.StatusDropOut, thesisModel.StatusDibatalkan, thesisModel.StatusGagal,
	} {
		assert.True(t, names[want], "status %q belum di-seed", want)
	}
}

func TestSeedRequirementsHaveDocumentTypes(t *testing.T) {
	d, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, d.YudisiumRequirements)
	for _, r := range d.YudisiumRequirements {
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.DocumentTypes, r.Name)
	}
	assert.NotEmpty(t, d.Admin.UserName)
}
