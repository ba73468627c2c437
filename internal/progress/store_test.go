package progress_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/examprep/internal/models"
	"github.com/vytor/examprep/internal/progress"
	"github.com/vytor/examprep/internal/testutil/mocks"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "simulation_progress_vocabulary_easy_set2", progress.ProgressKey("vocabulary_easy_set2"))
	assert.Equal(t, "set_progress_restatement_hard_3", progress.SetProgressKey(models.TypeRestatement, models.DifficultyHard, 3))
	assert.Equal(t, "quick_practice_progress_vocabulary", progress.QuickPracticeKey(models.TypeVocabulary))
}

func TestStore_ProgressLifecycle(t *testing.T) {
	ctx := context.Background()
	store := progress.NewStore(progress.NewMemoryStore())

	rec, err := store.LoadProgress(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, rec, "missing key reads as nil")

	want := models.ProgressRecord{
		CurrentQuestionIndex:   3,
		UserAnswers:            map[int]int{0: 1, 2: 3},
		QuestionFlags:          map[models.QuestionID]bool{"q-7": true},
		AnsweredQuestionsCount: 2,
		CorrectQuestionsCount:  1,
		Score:                  1,
		TotalQuestions:         10,
		ProgressPercentage:     20,
		CurrentScorePercentage: 10,
	}
	require.NoError(t, store.SaveProgress(ctx, "s1", want))

	rec, err = store.LoadProgress(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, want, *rec)

	require.NoError(t, store.DeleteProgress(ctx, "s1"))
	rec, err = store.LoadProgress(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestStore_MalformedDocumentReadsAsNil(t *testing.T) {
	ctx := context.Background()
	kv := progress.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, progress.ProgressKey("broken"), []byte("{not json")))
	require.NoError(t, kv.Set(ctx, progress.QuickPracticeKey(models.TypeVocabulary), []byte("[]")))

	store := progress.NewStore(kv)
	rec, err := store.LoadProgress(ctx, "broken")
	assert.NoError(t, err)
	assert.Nil(t, rec)

	summary, err := store.LoadSummary(ctx, progress.QuickPracticeKey(models.TypeVocabulary))
	assert.NoError(t, err)
	assert.Nil(t, summary)
}

func TestStore_Summary(t *testing.T) {
	ctx := context.Background()
	store := progress.NewStore(progress.NewMemoryStore())
	key := progress.SetProgressKey(models.TypeVocabulary, models.DifficultyEasy, 1)

	score, total := 80, 10
	require.NoError(t, store.SaveSummary(ctx, key, models.SetProgress{Completed: true, Score: &score, AnsweredQuestions: 10, TotalQuestions: &total}))

	got, err := store.LoadSummary(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Completed)
	assert.False(t, got.InProgress)
	assert.Equal(t, 80, *got.Score)
}

func TestStore_ReadErrorPropagates(t *testing.T) {
	kv := new(mocks.MockKeyValueStore)
	kv.On("Get", mock.Anything, "simulation_progress_s1").Return(nil, false, errors.New("disk gone"))

	rec, err := progress.NewStore(kv).LoadProgress(context.Background(), "s1")
	assert.Error(t, err)
	assert.Nil(t, rec)
	kv.AssertExpectations(t)
}

func TestMemoryStore_Keys(t *testing.T) {
	ctx := context.Background()
	kv := progress.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, "set_progress_b", []byte("1")))
	require.NoError(t, kv.Set(ctx, "set_progress_a", []byte("1")))
	require.NoError(t, kv.Set(ctx, "simulation_progress_x", []byte("1")))

	assert.Equal(t, []string{"set_progress_a", "set_progress_b"}, kv.Keys("set_progress_"))
}
