package scanner

import (
	"database/sql"

	model "github.com/MassBabyGeek/StudyFlow-backend/internal/models"
	"github.com/MassBabyGeek/StudyFlow-backend/internal/utils"
	"github.com/lib/pq"
)

// ScanUserProfile scanne une ligne SQL vers un UserProfile
// Utilise les types sql.Null* et les convertit automatiquement
func ScanUserProfile(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.UserProfile, error) {
	var user model.UserProfile
	var avatar, provider sql.NullString
	var level, xp, weeklyGoal sql.NullInt64
	var updatedBy sql.NullString

	err := scanner.Scan(
		&user.ID, &user.Name, &user.Email, &avatar,
		&level, &xp, &weeklyGoal, &provider,
		&user.JoinDate, &user.CreatedAt, &user.UpdatedAt,
		&user.CreatedBy, &updatedBy,
	)
	if err != nil {
		return nil, err
	}

	// Conversions
	user.Avatar = utils.NullStringToString(avatar)
	user.Provider = utils.NullStringToString(provider)
	user.Level = utils.NullInt64ToInt(level)
	user.XP = utils.NullInt64ToInt(xp)
	user.WeeklyGoal = utils.NullInt64ToInt(weeklyGoal)
	user.UpdatedBy = utils.NullStringToPointer(updatedBy)

	return &user, nil
}

// ScanSubject scanne une ligne SQL vers un Subject.
// Attend les colonnes id, name, parent_id, user_id, display_order,
// custom_color, created_by, updated_by, created_at, updated_at
func ScanSubject(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Subject, error) {
	var s model.Subject
	var parentID, userID, customColor sql.NullString

	err := scanner.Scan(
		&s.ID, &s.Name, &parentID, &userID, &s.DisplayOrder, &customColor,
		&s.CreatedBy, &s.UpdatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.ParentID = utils.NullStringToPointer(parentID)
	s.UserID = utils.NullStringToPointer(userID)
	s.CustomColor = utils.NullStringToPointer(customColor)

	return &s, nil
}

// ScanStudySession scanne une ligne SQL vers un StudySession
func ScanStudySession(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.StudySession, error) {
	var s model.StudySession
	var taskID sql.NullString

	err := scanner.Scan(
		&s.ID, &s.UserID, &s.SubjectID, &taskID,
		&s.StartTime, &s.EndTime, &s.DurationSeconds, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.TaskID = utils.NullStringToPointer(taskID)

	return &s, nil
}

// ScanStudySessionWithUser scanne une session avec les infos de l'utilisateur jointes
func ScanStudySessionWithUser(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.StudySession, error) {
	var s model.StudySession
	var taskID sql.NullString
	var userName, userAvatar sql.NullString
	var userID sql.NullString

	err := scanner.Scan(
		&s.ID, &s.UserID, &s.SubjectID, &taskID,
		&s.StartTime, &s.EndTime, &s.DurationSeconds, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt,
		&userID, &userName, &userAvatar,
	)
	if err != nil {
		return nil, err
	}

	s.TaskID = utils.NullStringToPointer(taskID)
	if userID.Valid {
		s.User = &model.UserCreator{
			ID:     userID.String,
			Name:   utils.NullStringToString(userName),
			Avatar: utils.NullStringToString(userAvatar),
		}
	}

	return &s, nil
}

// ScanTask scanne une ligne SQL vers une Task avec pq.Array pour les tags
func ScanTask(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Task, error) {
	var t model.Task
	var subjectID sql.NullString

	err := scanner.Scan(
		&t.ID, &t.UserID, &subjectID, &t.Title, &t.Description,
		&t.TargetAmount, &t.CompletedAmount, &t.Unit, pq.Array(&t.Tags),
		&t.DueDate, &t.Completed,
		&t.CreatedBy, &t.UpdatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.SubjectID = utils.NullStringToPointer(subjectID)

	return &t, nil
}

// ScanGroup scanne une ligne SQL vers un Group
func ScanGroup(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.Group, error) {
	var g model.Group
	var passwordHash sql.NullString

	err := scanner.Scan(
		&g.ID, &g.Name, &g.Description, &g.Code, &passwordHash, &g.OwnerID,
		&g.MemberCount, &g.CreatedBy, &g.UpdatedBy, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Le hash ne sort jamais de l'API, seul le flag est exposé
	g.HasPassword = passwordHash.Valid && passwordHash.String != ""

	return &g, nil
}

// ScanGroupMember scanne une ligne SQL vers un GroupMember
func ScanGroupMember(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.GroupMember, error) {
	var m model.GroupMember

	err := scanner.Scan(
		&m.GroupID, &m.UserID, &m.UserName, &m.Avatar, &m.Role, &m.JoinedAt,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// ScanLeaderboardEntry scanne une ligne SQL vers une LeaderboardEntry
func ScanLeaderboardEntry(scanner interface {
	Scan(dest ...interface{}) error
}) (*model.LeaderboardEntry, error) {
	var e model.LeaderboardEntry
	var level sql.NullInt64

	err := scanner.Scan(
		&e.UserID, &e.UserName, &e.Avatar, &level, &e.Rank, &e.TotalSeconds,
	)
	if err != nil {
		return nil, err
	}

	e.Level = utils.NullInt64ToInt(level)

	return &e, nil
}
