package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"FormUp/internal/cache"
	"FormUp/internal/model"
	"FormUp/internal/model/dto"
	"FormUp/internal/repository"
	"FormUp/internal/scoring"
	"FormUp/pkg/errors"
	"FormUp/pkg/logger"
	"FormUp/pkg/metrics"
	"FormUp/pkg/ocr"
	"FormUp/pkg/snowflake"
	"FormUp/storage/database"
	"FormUp/utils"

	"go.uber.org/zap"
)

type IpptService struct{}

var (
	ipptService *IpptService
	ipptOnce    sync.Once
)

func Ippt() *IpptService {
	ipptOnce.Do(func() {
		ipptService = &IpptService{}
	})
	return ipptService
}

// ScoreTable returns the scoring table for an age group, cached in Redis.
func (s *IpptService) ScoreTable(ctx context.Context, ageGroup string) (*dto.ScoreTableResponse, error) {
	if !scoring.ValidAgeGroup(ageGroup) {
		return nil, errors.ScoreTableNotFound
	}

	if cached, err := cache.GetScoreTable(ctx, ageGroup); err == nil && cached != nil {
		return cached, nil
	}

	db := database.DB().WithContext(ctx)
	bands, err := repository.ListScoreBands(db, ageGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to load score bands: %w", err)
	}
	if len(bands) == 0 {
		return nil, errors.ScoreTableNotFound
	}

	resp := &dto.ScoreTableResponse{AgeGroup: ageGroup}
	for _, b := range bands {
		resp.Bands = append(resp.Bands, dto.ScoreBandItem{
			Station:   string(b.Station),
			Threshold: b.Threshold,
			Points:    b.Points,
		})
	}

	if err := cache.SetScoreTable(ctx, resp); err != nil {
		logger.Logger.Warn("Failed to cache score table",
			zap.String("age_group", ageGroup),
			zap.Error(err))
	}
	return resp, nil
}

// CreateAttempt records a manual attempt. Scores are always computed
// server-side from the stored table; client-sent scores are never trusted.
func (s *IpptService) CreateAttempt(ctx context.Context, callerID, callerRole string, req *dto.CreateAttemptRequest) (*dto.AttemptItem, error) {
	targetID := callerID
	if req.UserID != "" && req.UserID != callerID {
		if callerRole != string(model.RoleCommander) && callerRole != string(model.RoleAdmin) {
			return nil, errors.Forbidden
		}
		targetID = req.UserID
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, errors.InvalidRequest
	}
	runSeconds, err := utils.ParseRunTime(req.RunTime)
	if err != nil {
		return nil, errors.InvalidRunTime
	}
	if req.SitupReps < 0 || req.PushupReps < 0 {
		return nil, errors.InvalidRequest
	}

	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, targetID)
	if err != nil {
		return nil, err
	}

	attempt, err := s.scoreAndStore(ctx, db, user, date, req.SitupReps, req.PushupReps, runSeconds, nil)
	if err != nil {
		return nil, err
	}

	metrics.RecordAttemptRecorded(ctx, "manual")
	item := s.toAttemptItem(attempt, user.PublicID)
	return &item, nil
}

// ListAttempts returns a user's attempt history, newest first.
func (s *IpptService) ListAttempts(ctx context.Context, userID string, limit int) ([]dto.AttemptItem, error) {
	db := database.DB().WithContext(ctx)

	user, err := User().mustGetUser(db, userID)
	if err != nil {
		return nil, err
	}

	if limit < 1 || limit > 100 {
		limit = 20
	}
	attempts, err := repository.ListAttemptsByUser(db, user.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	items := make([]dto.AttemptItem, 0, len(attempts))
	for i := range attempts {
		items = append(items, s.toAttemptItem(&attempts[i], user.PublicID))
	}
	return items, nil
}

// CreateSession turns a scanned scoresheet into a draft session. The caller
// sends either the raw image (forwarded to the OCR provider) or a
// pre-extracted cell grid.
func (s *IpptService) CreateSession(ctx context.Context, commanderID string, req *dto.CreateSessionRequest) (*dto.SessionItem, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, errors.InvalidRequest
	}

	db := database.DB().WithContext(ctx)

	commander, err := User().mustGetUser(db, commanderID)
	if err != nil {
		return nil, err
	}

	cells, err := s.extractCells(ctx, req)
	if err != nil {
		return nil, err
	}

	rows := ocr.ParseSheet(cells)
	if len(rows) == 0 {
		return nil, errors.ScanExtractionFailed
	}

	rawSheet, err := json.Marshal(cells)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal raw sheet: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session ID: %w", err)
	}

	session := &model.IpptSession{
		PublicID:    publicID,
		CommanderID: commander.ID,
		MSPID:       req.MSPID,
		Date:        date,
		Status:      model.SessionStatusDraft,
		UploadID:    uuid.NewString(),
		RawSheet:    rawSheet,
	}

	for _, r := range rows {
		row := model.IpptSessionRow{
			Serial:         r.Serial,
			ServiceNumber:  r.ServiceNumber,
			Name:           r.Name,
			SitupReps:      r.SitupReps,
			PushupReps:     r.PushupReps,
			RunTimeSeconds: r.RunTimeSeconds,
		}
		if r.ServiceNumber != "" {
			if u, err := repository.GetUserByServiceNumber(db, r.ServiceNumber); err == nil {
				row.ResolvedUserID = &u.ID
			}
		}
		session.Rows = append(session.Rows, row)
	}

	if err := repository.CreateSession(db, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	item := s.toSessionItem(session, true)
	return &item, nil
}

// GetSession returns one session with its draft rows.
func (s *IpptService) GetSession(ctx context.Context, commanderID, sessionID string) (*dto.SessionItem, error) {
	db := database.DB().WithContext(ctx)

	session, err := s.mustGetSession(db, commanderID, sessionID)
	if err != nil {
		return nil, err
	}

	item := s.toSessionItem(session, true)
	return &item, nil
}

// ListSessions returns the caller's upload history.
func (s *IpptService) ListSessions(ctx context.Context, commanderID string) ([]dto.SessionItem, error) {
	db := database.DB().WithContext(ctx)

	commander, err := User().mustGetUser(db, commanderID)
	if err != nil {
		return nil, err
	}

	sessions, err := repository.ListSessionsByCommander(db, commander.ID, 50)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	items := make([]dto.SessionItem, 0, len(sessions))
	for i := range sessions {
		items = append(items, s.toSessionItem(&sessions[i], false))
	}
	return items, nil
}

// ConfirmSession appends an attempt per resolved row and marks the session
// confirmed. Rows whose service number matches no user are reported back and
// skipped; corrections come in as new manual attempts, never edits.
func (s *IpptService) ConfirmSession(ctx context.Context, commanderID, sessionID string) (*dto.ConfirmSessionResponse, error) {
	db := database.DB().WithContext(ctx)

	session, err := s.mustGetSession(db, commanderID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionStatusDraft {
		return nil, errors.SessionNotDraft
	}

	resp := &dto.ConfirmSessionResponse{SessionID: sessionID}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range session.Rows {
			row := &session.Rows[i]

			resolvedID := row.ResolvedUserID
			if resolvedID == nil && row.ServiceNumber != "" {
				if u, err := repository.GetUserByServiceNumber(tx, row.ServiceNumber); err == nil {
					resolvedID = &u.ID
				}
			}
			if resolvedID == nil {
				label := row.ServiceNumber
				if label == "" {
					label = row.Name
				}
				resp.Unresolved = append(resp.Unresolved, label)
				continue
			}

			user, err := repository.GetUserByID(tx, *resolvedID)
			if err != nil {
				return fmt.Errorf("failed to load user for row: %w", err)
			}

			attempt, err := s.scoreAndStore(ctx, tx, user, session.Date,
				row.SitupReps, row.PushupReps, row.RunTimeSeconds, &session.ID)
			if err != nil {
				return err
			}

			if err := repository.UpdateSessionRow(tx, row.ID, map[string]interface{}{
				"resolved_user_id": *resolvedID,
				"attempt_id":       attempt.ID,
			}); err != nil {
				return fmt.Errorf("failed to update session row: %w", err)
			}
			resp.Confirmed++
		}

		if resp.Confirmed == 0 {
			return errors.SessionEmpty
		}
		return repository.UpdateSessionStatus(tx, session.ID, model.SessionStatusConfirmed)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSessionConfirmed(ctx, resp.Confirmed)
	return resp, nil
}

// Stats aggregates a sub-unit's attempts over a date range.
func (s *IpptService) Stats(ctx context.Context, q *dto.CommanderStatsQuery) (*dto.CommanderStatsResponse, error) {
	if q.MSPID <= 0 {
		return nil, errors.InvalidRequest
	}

	// Default window is the trailing year.
	to := time.Now()
	from := to.AddDate(-1, 0, 0)
	var err error
	if q.From != "" {
		if from, err = parseDate(q.From); err != nil {
			return nil, errors.InvalidRequest
		}
	}
	if q.To != "" {
		if to, err = parseDate(q.To); err != nil {
			return nil, errors.InvalidRequest
		}
		to = to.AddDate(0, 0, 1) // inclusive end date
	}

	db := database.DB().WithContext(ctx)

	if _, err := repository.GetMSPByID(db, q.MSPID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.MSPNotFound
		}
		return nil, fmt.Errorf("failed to check MSP: %w", err)
	}

	agg, err := repository.AggregateAttempts(db, q.MSPID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attempts: %w", err)
	}

	resp := &dto.CommanderStatsResponse{
		MSPID:        q.MSPID,
		AttemptCount: int(agg.AttemptCount),
		AverageTotal: agg.AverageTotal,
		TierCounts:   agg.TierCounts,
	}
	if agg.AttemptCount > 0 {
		passed := agg.TierCounts[string(model.ResultGold)] +
			agg.TierCounts[string(model.ResultSilver)] +
			agg.TierCounts[string(model.ResultPass)]
		resp.PassRate = float64(passed) / float64(agg.AttemptCount)
	}
	return resp, nil
}

// scoreAndStore computes the scorecard for one performance and appends the
// attempt. The age group follows the user's age on the attempt date.
func (s *IpptService) scoreAndStore(ctx context.Context, db *gorm.DB, user *model.User, date time.Time, situpReps, pushupReps, runSeconds int, sessionID *int64) (*model.IpptAttempt, error) {
	ageGroup := scoring.AgeGroupFor(user.DateOfBirth, date)

	table, err := s.loadTable(ctx, db, ageGroup)
	if err != nil {
		return nil, err
	}
	card := table.Score(situpReps, pushupReps, runSeconds)

	attempt := &model.IpptAttempt{
		UserID:         user.ID,
		Date:           date,
		SessionID:      sessionID,
		AgeGroup:       ageGroup,
		SitupReps:      situpReps,
		PushupReps:     pushupReps,
		RunTimeSeconds: runSeconds,
		SitupScore:     card.SitupScore,
		PushupScore:    card.PushupScore,
		RunScore:       card.RunScore,
		TotalScore:     card.TotalScore,
		Result:         model.IpptResult(card.Result),
	}
	if err := repository.CreateAttempt(db, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}
	return attempt, nil
}

func (s *IpptService) loadTable(ctx context.Context, db *gorm.DB, ageGroup string) (*scoring.Table, error) {
	resp, err := s.ScoreTable(ctx, ageGroup)
	if err != nil {
		return nil, err
	}
	rows := make([]scoring.Row, 0, len(resp.Bands))
	for _, b := range resp.Bands {
		rows = append(rows, scoring.Row{
			Station:   scoring.Station(b.Station),
			Threshold: b.Threshold,
			Points:    b.Points,
		})
	}
	return scoring.BuildTable(ageGroup, rows), nil
}

// extractCells gets the cell grid from the request, calling the OCR provider
// when the raw image was uploaded.
func (s *IpptService) extractCells(ctx context.Context, req *dto.CreateSessionRequest) ([]ocr.Cell, error) {
	if req.ImageBase64 != "" {
		image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return nil, errors.InvalidRequest
		}
		result, err := ocr.Analyze(ctx, image)
		if err != nil {
			logger.Logger.Error("OCR analysis failed", zap.Error(err))
			return nil, errors.ScanExtractionFailed
		}
		return result.Cells, nil
	}

	if len(req.Cells) == 0 {
		return nil, errors.InvalidRequest
	}
	cells := make([]ocr.Cell, 0, len(req.Cells))
	for _, c := range req.Cells {
		cells = append(cells, ocr.Cell{
			RowIndex:    c.RowIndex,
			ColumnIndex: c.ColumnIndex,
			Content:     c.Content,
		})
	}
	return cells, nil
}

func (s *IpptService) mustGetSession(db *gorm.DB, commanderID, sessionID string) (*model.IpptSession, error) {
	commander, err := User().mustGetUser(db, commanderID)
	if err != nil {
		return nil, err
	}

	publicID, err := parsePublicID(sessionID)
	if err != nil {
		return nil, errors.SessionNotFound
	}

	session, err := repository.GetSessionByPublicID(db, publicID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.SessionNotFound
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	// Sessions are private to their uploader; admins may also inspect them.
	if session.CommanderID != commander.ID && commander.Role != model.RoleAdmin {
		return nil, errors.SessionNotFound
	}
	return session, nil
}

func (s *IpptService) toAttemptItem(a *model.IpptAttempt, publicID int64) dto.AttemptItem {
	return dto.AttemptItem{
		ID:          a.ID,
		UserID:      formatPublicID(publicID),
		Date:        formatDate(a.Date),
		AgeGroup:    a.AgeGroup,
		SitupReps:   a.SitupReps,
		PushupReps:  a.PushupReps,
		RunTime:     utils.FormatRunTime(a.RunTimeSeconds),
		SitupScore:  a.SitupScore,
		PushupScore: a.PushupScore,
		RunScore:    a.RunScore,
		TotalScore:  a.TotalScore,
		Result:      string(a.Result),
		SessionID:   a.SessionID,
	}
}

func (s *IpptService) toSessionItem(session *model.IpptSession, withRows bool) dto.SessionItem {
	item := dto.SessionItem{
		ID:        formatPublicID(session.PublicID),
		Date:      formatDate(session.Date),
		MSPID:     session.MSPID,
		Status:    string(session.Status),
		RowCount:  len(session.Rows),
		CreatedAt: session.CreatedAt.Format(time.RFC3339),
	}
	if withRows {
		for _, r := range session.Rows {
			item.Rows = append(item.Rows, dto.SessionRowItem{
				Serial:        r.Serial,
				ServiceNumber: r.ServiceNumber,
				Name:          strings.TrimSpace(r.Name),
				SitupReps:     r.SitupReps,
				PushupReps:    r.PushupReps,
				RunTime:       utils.FormatRunTime(r.RunTimeSeconds),
				Resolved:      r.ResolvedUserID != nil,
			})
		}
	}
	return item
}
