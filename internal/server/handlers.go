package server

import (
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"softskill-server/internal/apperr"
	"softskill-server/internal/speech"
)

func readUpload(c echo.Context, field string) ([]byte, string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, "", apperr.InvalidArgumentf("no %s file provided", field)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer func(f multipart.File) { _ = f.Close() }(f)

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}

func (s *Server) analyzeResume(c echo.Context) error {
	data, filename, err := readUpload(c, "resumeFile")
	if err != nil {
		return httpError(err)
	}
	jobDescription := c.FormValue("jobDescription")

	doc, err := s.resume.Analyze(c.Request().Context(), requestEmail(c), filename, data, jobDescription)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"resumeId": doc.ID.Hex(),
		"analysis": doc.Analysis,
	})
}

func (s *Server) extractSkills(c echo.Context) error {
	summary, err := s.resume.Summarize(c.Request().Context(), requestEmail(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"skills_summary": summary})
}

func (s *Server) startInterview(c echo.Context) error {
	session, err := s.interview.Start(c.Request().Context(), requestEmail(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Interview started with skill-based + soft-skill questions",
		"interviewId": session.ID.Hex(),
		"questions":   session.Questions,
	})
}

func (s *Server) submitAnswer(c echo.Context) error {
	interviewID := c.FormValue("interviewId")
	if interviewID == "" {
		return httpError(apperr.InvalidArgumentf("missing interviewId"))
	}
	questionIndex, err := strconv.Atoi(c.FormValue("questionIndex"))
	if err != nil {
		return httpError(apperr.InvalidArgumentf("questionIndex must be an integer"))
	}
	audio, filename, err := readUpload(c, "audio")
	if err != nil {
		return httpError(err)
	}

	answer, err := s.interview.SubmitAnswer(c.Request().Context(), requestEmail(c), interviewID, questionIndex, audio, filename)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":    "Answer submitted",
		"transcript": answer.Transcript,
		"metrics":    answer.Metrics,
		"assessment": answer.Assessment,
	})
}

type emotionRequest struct {
	InterviewID  string             `json:"interviewId"`
	Distribution map[string]float64 `json:"emotion_distribution"`
}

func (s *Server) logEmotion(c echo.Context) error {
	var req emotionRequest
	if err := c.Bind(&req); err != nil {
		return httpError(apperr.InvalidArgumentf("invalid request body"))
	}
	if req.InterviewID == "" {
		return httpError(apperr.InvalidArgumentf("missing interviewId"))
	}
	if err := s.interview.LogEmotion(c.Request().Context(), requestEmail(c), req.InterviewID, req.Distribution); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Emotion logged"})
}

type interviewRequest struct {
	InterviewID string `json:"interviewId"`
}

func (s *Server) finalizeInterview(c echo.Context) error {
	var req interviewRequest
	if err := c.Bind(&req); err != nil || req.InterviewID == "" {
		return httpError(apperr.InvalidArgumentf("missing interviewId"))
	}
	if err := s.interview.Finalize(c.Request().Context(), requestEmail(c), req.InterviewID); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Interview finalized"})
}

func (s *Server) getAnalysis(c echo.Context) error {
	var req interviewRequest
	if err := c.Bind(&req); err != nil || req.InterviewID == "" {
		return httpError(apperr.InvalidArgumentf("missing interviewId"))
	}
	report, err := s.interview.Analyze(c.Request().Context(), requestEmail(c), req.InterviewID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, report)
}

func (s *Server) getAssessment(c echo.Context) error {
	var req interviewRequest
	if err := c.Bind(&req); err != nil || req.InterviewID == "" {
		return httpError(apperr.InvalidArgumentf("missing interviewId"))
	}
	session, err := s.interview.GetAssessment(c.Request().Context(), requestEmail(c), req.InterviewID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"questions":    session.Questions,
		"answers":      session.Answers,
		"status":       session.Status,
		"completed_at": session.CompletedAt,
	})
}

// processAudio is the standalone transcription endpoint: no session involved,
// the metrics are computed and returned but not stored.
func (s *Server) processAudio(c echo.Context) error {
	audio, filename, err := readUpload(c, "audio")
	if err != nil {
		return httpError(err)
	}
	tr, err := s.transcriber.Transcribe(c.Request().Context(), audio, filename)
	if err != nil {
		return httpError(apperr.Upstreamf("transcribing audio: %v", err))
	}
	m := speech.ComputeMetrics(tr.Segments)
	return c.JSON(http.StatusOK, echo.Map{
		"language":        tr.Language,
		"transcript":      tr.Text,
		"speechRateWPM":   roundTo(m.WPM, 2),
		"fillerRate":      roundTo(m.FillerRate, 3),
		"fillerCount":     m.FillerCount,
		"fillerWordsUsed": m.FillerWordsUsed,
	})
}

type frameAnalysisRequest struct {
	Image string `json:"image"`
}

// analyzeFrame is the standalone classifier passthrough.
func (s *Server) analyzeFrame(c echo.Context) error {
	var req frameAnalysisRequest
	if err := c.Bind(&req); err != nil || req.Image == "" {
		return httpError(apperr.InvalidArgumentf("no image data"))
	}
	analysis, err := s.emotion.Classify(c.Request().Context(), req.Image)
	if err != nil {
		return httpError(apperr.Upstreamf("classifying frame: %v", err))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"dominant_emotion":     analysis.DominantEmotion,
		"emotion_distribution": analysis.Distribution,
		"region":               analysis.Region,
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "ok",
		"metrics": s.stats.Snapshot(),
	})
}

func roundTo(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}
