package simulation

// Reduce applies ev to st and returns the next state together with the
// side effects the transition requires. It does no I/O. Events that do not
// apply in the current state return st unchanged and no effects.
func Reduce(st State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Initialize:
		return reload(st, false, true)
	case Loaded:
		return loaded(st, e)
	case SelectAnswer:
		return selectAnswer(st, e.Option)
	case SubmitAnswer:
		return submit(st)
	case NextQuestion:
		return next(st)
	case PreviousQuestion:
		if st.CurrentIndex <= 0 || st.TotalQuestions == 0 {
			return st, nil
		}
		return navigate(st, st.CurrentIndex-1)
	case NavigateToQuestion:
		return navigate(st, e.Index)
	case ToggleExplanation:
		if st.CurrentQuestion() == nil {
			return st, nil
		}
		st = st.clone()
		st.ShowExplanation = !st.ShowExplanation
		return st, nil
	case ToggleQuestionFlag:
		return toggleFlag(st, e.Index)
	case Restart:
		return reload(st, true, false)
	case Reset:
		next, effects := reload(st, true, false)
		return next, append([]Effect{DeleteProgress{}}, effects...)
	case Tick:
		return tick(st, e)
	}
	return st, nil
}

// reload starts a new load generation. Restart and Reset keep flags, which
// are keyed by question identity and survive reshuffling.
func reload(st State, keepFlags, restore bool) (State, []Effect) {
	var effects []Effect
	if st.TimerActive {
		effects = append(effects, StopTimer{})
	}

	fresh := NewState(st.Config)
	fresh.Generation = st.Generation + 1
	fresh.TimerID = st.TimerID + 1
	if keepFlags {
		for id, flagged := range st.Flags {
			fresh.Flags[id] = flagged
		}
	}
	return fresh, append(effects, FetchQuestions{Generation: fresh.Generation, Restore: restore && !fresh.ExamMode})
}

func loaded(st State, e Loaded) (State, []Effect) {
	if e.Generation != st.Generation || st.Loaded {
		return st, nil
	}
	st = st.clone()
	st.Questions = e.Questions
	st.TotalQuestions = len(e.Questions)
	st.Loaded = true
	st.CurrentIndex = 0

	if e.Record != nil && !st.ExamMode && st.TotalQuestions > 0 {
		st.overlay(*e.Record)
	}
	st.recount()
	st.moveTo(st.CurrentIndex)

	if st.ExamMode && st.TotalQuestions > 0 {
		st.TimerActive = true
		return st, []Effect{StartTimer{TimerID: st.TimerID}}
	}
	return st, nil
}

func selectAnswer(st State, option int) (State, []Effect) {
	q := st.CurrentQuestion()
	if q == nil || st.Complete || option < 0 || option >= len(q.Options) {
		return st, nil
	}
	if st.Submitted {
		if recorded, ok := st.Answers[st.CurrentIndex]; ok && recorded == option {
			return st, nil
		}
	}
	st = st.clone()
	// Choosing another option on an answered position reopens it.
	st.Submitted = false
	st.ShowExplanation = false
	st.SelectedAnswer = &option
	return st, nil
}

func submit(st State) (State, []Effect) {
	q := st.CurrentQuestion()
	if q == nil || st.Complete || st.Submitted || st.SelectedAnswer == nil {
		return st, nil
	}
	st = st.clone()
	option := *st.SelectedAnswer
	correct := q.IsCorrect(option)

	if prior, ok := st.Answers[st.CurrentIndex]; ok {
		wasCorrect := q.IsCorrect(prior)
		switch {
		case wasCorrect && !correct:
			st.Score--
			st.CorrectCount--
		case !wasCorrect && correct:
			st.Score++
			st.CorrectCount++
		}
	} else if correct {
		st.Score++
		st.CorrectCount++
	}
	st.Answers[st.CurrentIndex] = option
	st.recount()
	st.Submitted = true
	st.ShowExplanation = true

	effects := []Effect{LogAnswer{Topic: st.Config.Criteria.Topic(), QuestionID: q.ID, Correct: correct}}
	if !st.ExamMode {
		effects = append(effects, SaveProgress{Record: st.Record()})
		if c := st.Config.Criteria; c.IsSet() {
			effects = append(effects, SaveSetProgress{Type: c.Type, Difficulty: c.Difficulty, SetNumber: c.SetNumber, Summary: st.Summary()})
		}
	}
	return st, effects
}

func next(st State) (State, []Effect) {
	if st.TotalQuestions == 0 || st.Complete {
		return st, nil
	}
	if !st.IsLast() {
		return navigate(st, st.CurrentIndex+1)
	}
	return complete(st.clone(), ReasonFinished)
}

func navigate(st State, index int) (State, []Effect) {
	if index < 0 || index >= st.TotalQuestions || index == st.CurrentIndex {
		return st, nil
	}
	st = st.clone()
	st.moveTo(index)
	return st, st.persist(nil)
}

func toggleFlag(st State, index int) (State, []Effect) {
	if index < 0 || index >= len(st.Questions) {
		return st, nil
	}
	st = st.clone()
	id := st.Questions[index].ID
	if st.Flags[id] {
		delete(st.Flags, id)
	} else {
		st.Flags[id] = true
	}
	return st, st.persist(nil)
}

func tick(st State, e Tick) (State, []Effect) {
	if e.TimerID != st.TimerID || !st.TimerActive || !st.ExamMode || st.Complete {
		return st, nil
	}
	st = st.clone()
	if st.RemainingTime > 0 {
		st.RemainingTime--
	}
	if st.RemainingTime <= 0 {
		return complete(st, ReasonTimeout)
	}
	return st, nil
}

// complete ends the session. st must already be a private copy.
func complete(st State, reason string) (State, []Effect) {
	var effects []Effect
	if st.TimerActive {
		effects = append(effects, StopTimer{})
	}
	st.TimerActive = false
	st.Complete = true
	st.CompletionReason = reason

	c := st.Config.Criteria
	switch {
	case c.IsSet():
		effects = append(effects, SaveSetProgress{Type: c.Type, Difficulty: c.Difficulty, SetNumber: c.SetNumber, Summary: st.Summary()})
	case c.IsQuickPractice():
		effects = append(effects, SaveQuickProgress{Type: c.Type, Summary: st.Summary()})
	}
	effects = append(effects, LogCompletion{
		Topic:           c.Topic(),
		ScorePercentage: st.ScorePercentage,
		Correct:         st.CorrectCount,
		Answered:        st.AnsweredCount,
	})
	return st, st.persist(effects)
}

// persist appends a progress write unless the session is timed.
func (s State) persist(effects []Effect) []Effect {
	if s.ExamMode {
		return effects
	}
	return append(effects, SaveProgress{Record: s.Record()})
}
