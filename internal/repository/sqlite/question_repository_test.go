package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/repository"
	"github.com/vytor/examprep/internal/repository/sqlite"
	"github.com/vytor/examprep/internal/testutil"
)

type QuestionRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.QuestionRepository
}

func (s *QuestionRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewQuestionRepository(s.db)
}

func (s *QuestionRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *QuestionRepositorySuite) TestUpsertAndListKeepsBankOrder() {
	ctx := context.Background()
	easy := testutil.Questions("sc-e", models.TypeSentenceCompletion, models.DifficultyEasy, 3)
	hard := testutil.Questions("sc-h", models.TypeSentenceCompletion, models.DifficultyHard, 2)

	n, err := s.repo.UpsertBatch(ctx, append(easy, hard...))
	s.Require().NoError(err)
	s.Assert().Equal(5, n)

	got, err := s.repo.List(ctx, models.QuestionFilter{Type: models.TypeSentenceCompletion, Difficulty: models.DifficultyEasy})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	for i, q := range got {
		s.Assert().Equal(easy[i].ID, q.ID)
		s.Assert().Equal(easy[i].Options, q.Options)
		s.Assert().Equal(1, q.CorrectAnswer)
	}

	count, err := s.repo.Count(ctx, models.QuestionFilter{Type: models.TypeSentenceCompletion})
	s.Require().NoError(err)
	s.Assert().Equal(5, count)
}

func (s *QuestionRepositorySuite) TestListLimitAndOffset() {
	ctx := context.Background()
	_, err := s.repo.UpsertBatch(ctx, testutil.Questions("v", models.TypeVocabulary, models.DifficultyMedium, 25))
	s.Require().NoError(err)

	page, err := s.repo.List(ctx, models.QuestionFilter{Type: models.TypeVocabulary, Limit: 10, Offset: 20})
	s.Require().NoError(err)
	s.Require().Len(page, 5)
	s.Assert().Equal(models.QuestionID("v-20"), page[0].ID)

	rest, err := s.repo.List(ctx, models.QuestionFilter{Type: models.TypeVocabulary, Offset: 22})
	s.Require().NoError(err)
	s.Assert().Len(rest, 3)
}

func (s *QuestionRepositorySuite) TestSuccessiveBatchesKeepFileOrder() {
	ctx := context.Background()
	first := testutil.Questions("a", models.TypeVocabulary, models.DifficultyEasy, 15)
	second := testutil.Questions("b", models.TypeVocabulary, models.DifficultyEasy, 15)

	_, err := s.repo.UpsertBatch(ctx, first)
	s.Require().NoError(err)
	_, err = s.repo.UpsertBatch(ctx, second)
	s.Require().NoError(err)

	page, err := s.repo.List(ctx, models.QuestionFilter{Type: models.TypeVocabulary, Difficulty: models.DifficultyEasy, Limit: 10, Offset: 20})
	s.Require().NoError(err)
	s.Require().Len(page, 10)
	s.Assert().Equal(second[5].ID, page[0].ID)
	s.Assert().Equal(second[14].ID, page[9].ID)

	// reloading the first file leaves the order untouched
	_, err = s.repo.UpsertBatch(ctx, first)
	s.Require().NoError(err)
	all, err := s.repo.List(ctx, models.QuestionFilter{Type: models.TypeVocabulary})
	s.Require().NoError(err)
	s.Require().Len(all, 30)
	s.Assert().Equal(first[0].ID, all[0].ID)
	s.Assert().Equal(second[0].ID, all[15].ID)
}

func (s *QuestionRepositorySuite) TestUpsertReplacesExisting() {
	ctx := context.Background()
	qs := testutil.Questions("r", models.TypeRestatement, models.DifficultyMedium, 1)
	topic := 4
	qs[0].TopicID = &topic
	qs[0].Tags = []string{"grammar"}
	_, err := s.repo.UpsertBatch(ctx, qs)
	s.Require().NoError(err)

	qs[0].Prompt = "updated"
	qs[0].CorrectAnswer = 3
	_, err = s.repo.UpsertBatch(ctx, qs)
	s.Require().NoError(err)

	got, err := s.repo.List(ctx, models.QuestionFilter{Type: models.TypeRestatement})
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Assert().Equal("updated", got[0].Prompt)
	s.Assert().Equal(3, got[0].CorrectAnswer)
	s.Require().NotNil(got[0].TopicID)
	s.Assert().Equal(4, *got[0].TopicID)
	s.Assert().Equal([]string{"grammar"}, got[0].Tags)
}

func (s *QuestionRepositorySuite) TestUpsertRejectsInvalidBatch() {
	ctx := context.Background()
	qs := testutil.Questions("bad", models.TypeVocabulary, models.DifficultyEasy, 2)
	qs[1].CorrectAnswer = 9

	_, err := s.repo.UpsertBatch(ctx, qs)
	s.Require().Error(err)

	count, err := s.repo.Count(ctx, models.QuestionFilter{})
	s.Require().NoError(err)
	s.Assert().Zero(count)
}

func TestQuestionRepositorySuite(t *testing.T) {
	suite.Run(t, new(QuestionRepositorySuite))
}
