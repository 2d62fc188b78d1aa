//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"onboard/internal/onboarding/catalog"
	"onboard/internal/onboarding/models"
	"onboard/pkg/sentinel"
	"onboard/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *Store
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	pg := containers.NewPostgresContainer(s.T())
	s.Require().NoError(Migrate(s.ctx, pg.DB))
	s.store = New(pg.DB)
}

func (s *PostgresStoreSuite) newForm(token string) *models.FormSchema {
	return &models.FormSchema{
		Token: token,
		Title: "Engineering Onboarding",
		Fields: []models.FieldInstance{
			{ID: "text-1", Kind: catalog.KindText, Label: "Full Name", Required: true},
			{ID: "checkbox-2", Kind: catalog.KindCheckbox, Label: "Remote?"},
		},
		Recipients: []models.Recipient{
			{Email: "jane.doe@example.com", Name: "Jane Doe", Type: models.RecipientCandidate, CompletedFields: []models.AnsweredField{}},
		},
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (s *PostgresStoreSuite) TestSaveAndFind() {
	form := s.newForm("it-save-find")
	s.Require().NoError(s.store.SaveForm(s.ctx, form))

	got, err := s.store.FindByToken(s.ctx, form.Token)
	s.Require().NoError(err)
	s.Equal(form.Title, got.Title)
	s.Len(got.Fields, 2)
	s.Require().Len(got.Recipients, 1)
	s.Equal("jane.doe@example.com", got.Recipients[0].Email)
	s.Nil(got.Recipients[0].CompletedAt)
}

func (s *PostgresStoreSuite) TestSaveDuplicateToken() {
	form := s.newForm("it-dup")
	s.Require().NoError(s.store.SaveForm(s.ctx, form))
	s.ErrorIs(s.store.SaveForm(s.ctx, s.newForm("it-dup")), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.FindByToken(s.ctx, "it-missing")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpsertRecipientReplacesAnswers() {
	form := s.newForm("it-upsert")
	s.Require().NoError(s.store.SaveForm(s.ctx, form))

	completedAt := time.Now().UTC().Truncate(time.Millisecond)
	rec := models.Recipient{
		Email: "jane.doe@example.com",
		Name:  "Jane Doe",
		Type:  models.RecipientCandidate,
		CompletedFields: []models.AnsweredField{
			{ID: "text-1", Kind: catalog.KindText, Label: "Full Name", Value: "Jane Doe"},
			{ID: "checkbox-2", Kind: catalog.KindCheckbox, Label: "Remote?", Value: false},
		},
		CompletedAt: &completedAt,
	}
	s.Require().NoError(s.store.UpsertRecipient(s.ctx, form.Token, rec))

	got, err := s.store.FindByToken(s.ctx, form.Token)
	s.Require().NoError(err)
	s.Require().Len(got.Recipients, 1)
	s.Len(got.Recipients[0].CompletedFields, 2)
	s.Require().NotNil(got.Recipients[0].CompletedAt)
	s.True(got.Recipients[0].CompletedAt.Equal(completedAt))

	// A checkbox false answer survives the JSONB round trip as a bool.
	s.Equal(false, got.Recipients[0].CompletedFields[1].Value)
}

func (s *PostgresStoreSuite) TestUpsertRecipientAppends() {
	form := s.newForm("it-append")
	s.Require().NoError(s.store.SaveForm(s.ctx, form))

	late := models.Recipient{Email: "late.signup@example.com", Type: models.RecipientCandidate}
	s.Require().NoError(s.store.UpsertRecipient(s.ctx, form.Token, late))

	got, err := s.store.FindByToken(s.ctx, form.Token)
	s.Require().NoError(err)
	s.Len(got.Recipients, 2)
}

func (s *PostgresStoreSuite) TestUpsertRecipientUnknownToken() {
	rec := models.Recipient{Email: "jane.doe@example.com"}
	s.ErrorIs(s.store.UpsertRecipient(s.ctx, "it-no-such-form", rec), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListByRecipientNewestFirst() {
	base := time.Now().UTC().Truncate(time.Millisecond)
	for i, token := range []string{"it-list-old", "it-list-new"} {
		form := s.newForm(token)
		form.Recipients[0].Email = "list.order@example.com"
		form.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		s.Require().NoError(s.store.SaveForm(s.ctx, form))
	}

	forms, err := s.store.ListByRecipient(s.ctx, "list.order@example.com")
	s.Require().NoError(err)
	s.Require().Len(forms, 2)
	s.Equal("it-list-new", forms[0].Token)
	s.Equal("it-list-old", forms[1].Token)
}
