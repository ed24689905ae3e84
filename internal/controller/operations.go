package controller

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/studygenie/internal/normalize"
	"github.com/abhisek/studygenie/internal/progress"
	"github.com/abhisek/studygenie/internal/requests"
	"github.com/abhisek/studygenie/internal/session"
	"github.com/abhisek/studygenie/internal/transport"
)

// GeneratePlan requests a study plan and appends it to the session.
func (c *Controller) GeneratePlan(ctx context.Context, form requests.PlanForm) (session.PlanRecord, error) {
	req, err := requests.BuildStudyPlan(form)
	if err != nil {
		c.reportInvalid(err)
		return session.PlanRecord{}, err
	}

	epoch := c.sessions.Epoch()
	c.notices.Info("Generating AI study plan...")
	raw, err := c.backend().StudyPlan(ctx, req)
	if err != nil {
		c.reportFailure(transport.OpStudyPlan, err)
		return session.PlanRecord{}, err
	}

	rec := session.PlanRecord{
		CreatedAt:  c.now(),
		RawPayload: raw,
		View:       normalize.NormalizePlan(raw),
	}
	if err := c.settle(transport.OpStudyPlan, epoch, func(tx *session.Tx) error {
		tx.AppendPlan(rec)
		return nil
	}); err != nil {
		return session.PlanRecord{}, err
	}
	c.notices.Success("Study plan generated successfully!")
	return rec, nil
}

// Ask sends a chat question. The question and the reply are committed
// together, and only when the backend answered.
func (c *Controller) Ask(ctx context.Context, question string) (normalize.ChatAnswer, error) {
	req, err := requests.BuildAskDoubt(question)
	if err != nil {
		c.reportInvalid(err)
		return normalize.ChatAnswer{}, err
	}

	epoch := c.sessions.Epoch()
	asked := c.now()
	raw, err := c.backend().AskDoubt(ctx, req)
	if err != nil {
		c.reportFailure(transport.OpAskDoubt, err)
		return normalize.ChatAnswer{}, err
	}

	answer := normalize.NormalizeChat(raw)
	err = c.settle(transport.OpAskDoubt, epoch, func(tx *session.Tx) error {
		tx.AppendChat(
			session.ChatMessage{Text: req.Question, Sender: session.SenderUser, CreatedAt: asked},
			session.ChatMessage{Text: answer.Text, Sender: session.SenderAssistant, CreatedAt: c.now()},
		)
		return nil
	})
	if err != nil {
		return normalize.ChatAnswer{}, err
	}
	return answer, nil
}

// AnalyzeProgress submits the day's progress for analysis. Only one
// analysis may be outstanding at a time; a second call is rejected with
// ErrAnalysisInProgress and leaves the first untouched.
func (c *Controller) AnalyzeProgress(ctx context.Context, form requests.ProgressForm) (session.ProgressRecord, error) {
	if !c.analyzing.CompareAndSwap(false, true) {
		c.notices.Warning("Analysis already in progress...")
		return session.ProgressRecord{}, ErrAnalysisInProgress
	}
	defer c.analyzing.Store(false)

	req, err := requests.BuildProgress(form)
	if err != nil {
		c.reportInvalid(err)
		return session.ProgressRecord{}, err
	}

	epoch := c.sessions.Epoch()
	c.notices.Info("Analyzing your progress...")
	raw, err := c.backend().AnalyzeProgress(ctx, req)
	if err != nil {
		c.reportFailure(transport.OpAnalyzeProgress, err)
		return session.ProgressRecord{}, err
	}

	now := c.now()
	analysis := normalize.NormalizeAnalysis(raw, normalize.AnalysisInput{
		CompletedTasks: req.CompletedTasks,
		TotalTasks:     req.TotalTasks,
	})
	rec := session.ProgressRecord{
		CreatedAt: now,
		Snapshot: progress.Snapshot{
			Date:              progress.DateKey(now),
			CompletedTasks:    req.CompletedTasks,
			TotalTasks:        req.TotalTasks,
			StudyHours:        req.StudyHours,
			FocusLevel:        req.FocusLevel,
			ProductivityScore: analysis.ProductivityScore,
		},
		Analysis: analysis,
	}
	err = c.settle(transport.OpAnalyzeProgress, epoch, func(tx *session.Tx) error {
		if err := c.progress.Record(rec.Snapshot); err != nil {
			return fmt.Errorf("record progress: %w", err)
		}
		tx.AppendProgress(rec)
		return nil
	})
	if err != nil {
		return session.ProgressRecord{}, err
	}
	c.notices.Success("Progress analysis complete!")
	return rec, nil
}

// UploadNotes sends notes, pasted or read from a file, to the backend.
func (c *Controller) UploadNotes(ctx context.Context, form requests.NotesForm) (session.NotesRecord, error) {
	req, err := requests.BuildNotes(form)
	if err != nil {
		c.reportInvalid(err)
		return session.NotesRecord{}, err
	}

	epoch := c.sessions.Epoch()
	c.notices.Info("Processing and uploading notes...")
	raw, err := c.backend().UploadNotes(ctx, req)
	if err != nil {
		c.reportFailure(transport.OpUploadNotes, err)
		return session.NotesRecord{}, err
	}

	rec := session.NotesRecord{
		CreatedAt: c.now(),
		Title:     req.Title,
		Subject:   req.Subject,
		Result:    normalize.NormalizeNotes(raw),
	}
	if err := c.settle(transport.OpUploadNotes, epoch, func(tx *session.Tx) error {
		tx.AppendNotes(rec)
		return nil
	}); err != nil {
		return session.NotesRecord{}, err
	}
	if rec.Result.OK {
		c.notices.Success("Notes uploaded and processed successfully!")
	} else {
		c.notices.Warning(rec.Result.Message)
	}
	return rec, nil
}

// GenerateQuestions requests open practice questions.
func (c *Controller) GenerateQuestions(ctx context.Context, form requests.QuestionsForm) (normalize.QuestionList, error) {
	req, err := requests.BuildQuestions(form)
	if err != nil {
		c.reportInvalid(err)
		return normalize.QuestionList{}, err
	}
	c.notices.Info("Generating questions using AI...")
	return c.generate(transport.OpGenerateQuestions, normalize.KindQuestions, func() (json.RawMessage, error) {
		return c.backend().GenerateQuestions(ctx, req)
	})
}

// GenerateMCQs requests multiple-choice questions.
func (c *Controller) GenerateMCQs(ctx context.Context, form requests.QuestionsForm) (normalize.QuestionList, error) {
	req, err := requests.BuildMCQs(form)
	if err != nil {
		c.reportInvalid(err)
		return normalize.QuestionList{}, err
	}
	c.notices.Info("Generating MCQs using AI...")
	return c.generate(transport.OpGenerateMCQs, normalize.KindMCQs, func() (json.RawMessage, error) {
		return c.backend().GenerateMCQs(ctx, req)
	})
}

// generate runs a question call. Question lists are not kept in the
// session, but a result from a previous identity is still dropped.
func (c *Controller) generate(op transport.Operation, kind normalize.QuestionKind, call func() (json.RawMessage, error)) (normalize.QuestionList, error) {
	epoch := c.sessions.Epoch()
	raw, err := call()
	if err != nil {
		c.reportFailure(op, err)
		return normalize.QuestionList{}, err
	}
	if err := c.settle(op, epoch, func(*session.Tx) error { return nil }); err != nil {
		return normalize.QuestionList{}, err
	}

	list := normalize.NormalizeQuestions(raw, kind)
	if list.Failed {
		c.notices.Warning(list.Message)
		return list, nil
	}
	noun := "questions"
	if kind == normalize.KindMCQs {
		noun = "MCQs"
	}
	c.notices.Success(fmt.Sprintf("Generated %d %s successfully!", list.TotalGenerated, noun))
	return list, nil
}
