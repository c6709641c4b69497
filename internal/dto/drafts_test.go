package dto

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/portfolio-backend/internal/models"
)

func TestTagList_AddTrimsAndSuppressesDuplicates(t *testing.T) {
	var tags TagList

	assert.True(t, tags.Add("  Go "))
	assert.False(t, tags.Add("Go"))
	assert.False(t, tags.Add("   "))
	assert.True(t, tags.Add("React"))

	assert.Equal(t, TagList{"Go", "React"}, tags)
}

func TestTagList_RemoveExactlyOne(t *testing.T) {
	tags := TagList{"Go", "SQL", "Go"}

	assert.True(t, tags.Remove("Go"))
	assert.Equal(t, TagList{"SQL", "Go"}, tags)

	assert.False(t, tags.Remove("Rust"))
	assert.Equal(t, TagList{"SQL", "Go"}, tags)
}

func TestTagList_DedupKeepsFirstOccurrence(t *testing.T) {
	tags := TagList{"React", " React ", "", "Go", "React"}

	assert.Equal(t, TagList{"React", "Go"}, tags.Dedup())
	assert.Equal(t, TagList{}, TagList(nil).Dedup())
}

func TestProjectDraft_FieldsStoreUniqueTags(t *testing.T) {
	d := &ProjectDraft{Title: "Site", Description: "Landing", Technologies: TagList{"Go", "Go "}, Categories: TagList{"web", "web"}}

	fields := d.Fields()
	assert.Equal(t, pq.StringArray{"Go"}, fields["technologies"])
	assert.Equal(t, pq.StringArray{"web"}, fields["categories"])
}

func TestExperienceDraft_PrepareAppliesCurrentToggle(t *testing.T) {
	d := &ExperienceDraft{Title: "Dev", Company: "ACME", StartDate: "2020-01-01", EndDate: "2022-01-01", Current: true}

	d.Prepare()
	assert.Empty(t, d.EndDate)
	require.NoError(t, d.Validate())
}

func TestTagEditRequest_DoesNotMutateInput(t *testing.T) {
	original := TagList{"Go", "SQL"}
	req := TagEditRequest{Tags: original, Op: "remove", Value: "Go"}

	assert.Equal(t, TagList{"SQL"}, req.Apply())
	assert.Equal(t, TagList{"Go", "SQL"}, original)
}

func TestProjectDraftFrom_NormalizesMissingTags(t *testing.T) {
	draft := ProjectDraftFrom(&models.Project{ID: uuid.New(), Title: "Site"})

	assert.NotNil(t, draft.Technologies)
	assert.NotNil(t, draft.Categories)
	assert.Len(t, draft.Technologies, 0)

	fields := draft.Fields()
	assert.Equal(t, pq.StringArray{}, fields["technologies"])
}

func TestExperienceDraft_SetCurrentClearsEndDate(t *testing.T) {
	d := &ExperienceDraft{Title: "Dev", Company: "ACME", StartDate: "2020-01-01", EndDate: "2022-01-01"}

	d.SetCurrent(true)
	assert.True(t, d.Current)
	assert.Empty(t, d.EndDate)
	require.NoError(t, d.Validate())
	assert.Nil(t, d.Fields()["end_date"])

	d.SetCurrent(false)
	d.EndDate = "2022-01-01"
	require.NoError(t, d.Validate())
	assert.Equal(t, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), d.Fields()["end_date"])
}

func TestExperienceDraft_RejectsCurrentWithEndDate(t *testing.T) {
	d := &ExperienceDraft{Title: "Dev", Company: "ACME", StartDate: "2020-01-01", EndDate: "2022-01-01", Current: true}
	assert.Error(t, d.Validate())
}

func TestExperienceDraft_RejectsEndBeforeStart(t *testing.T) {
	d := &ExperienceDraft{Title: "Dev", Company: "ACME", StartDate: "2022-01-01", EndDate: "2020-01-01"}
	assert.Error(t, d.Validate())
}

func TestDraftID(t *testing.T) {
	d := &ServiceDraft{}
	_, ok := d.DraftID()
	assert.False(t, ok)

	id := uuid.New()
	d.SetID(id)
	got, ok := d.DraftID()
	assert.True(t, ok)
	assert.Equal(t, id, got)

	bad := &ServiceDraft{Title: "x", Description: "y", IconName: "code"}
	bad.ID = "not-a-uuid"
	assert.Error(t, bad.Validate())
}

func TestServiceDraft_Validate(t *testing.T) {
	assert.Error(t, (&ServiceDraft{Title: "", Description: "d", IconName: "code"}).Validate())
	assert.Error(t, (&ServiceDraft{Title: "t", Description: "d", IconName: "code", Order: -1}).Validate())
	assert.NoError(t, (&ServiceDraft{Title: "t", Description: "d", IconName: "code", Order: 1}).Validate())
}

func TestSkillDraft_ProficiencyRange(t *testing.T) {
	assert.Error(t, (&SkillDraft{Name: "Go", Category: "Backend", Proficiency: 120}).Validate())
	assert.NoError(t, (&SkillDraft{Name: "Go", Category: "Backend", Proficiency: 90}).Validate())
}

func TestSettingDraft_UpdateKeepsKey(t *testing.T) {
	d := &SettingDraft{Key: "site.title", Value: "Portfolio"}
	require.NoError(t, d.Validate())

	assert.Contains(t, d.Fields(), "key")
	assert.NotContains(t, d.UpdateFields(), "key")
}

func TestProfileDraft_AttachAsset(t *testing.T) {
	d := &ProfileDraft{FullName: "John Doe", Title: "Dev"}

	assert.True(t, d.AttachAsset("avatar_url", "/storage/avatars/1-me.png"))
	assert.True(t, d.AttachAsset("resume_url", "/storage/resumes/1-cv.pdf"))
	assert.False(t, d.AttachAsset("image_url", "x"))
	require.NoError(t, d.Validate())

	fields := d.Fields()
	assert.Equal(t, "/storage/avatars/1-me.png", fields["avatar_url"])
	assert.Nil(t, fields["email"])
}
