package db

import (
	"Gin_postgres_redis_inventory_tracker/models"
	"context"
	"time"
)

// HistoryRow is a log entry joined with the actor's name.
type HistoryRow struct {
	ID       uint      `json:"id"`
	Type     string    `json:"type"`
	Details  string    `json:"details"`
	Date     time.Time `json:"date"`
	UserName *string   `json:"user"`
}

// historyScope narrows the audit trail to one actor's entries whenever either
// side of the request is a regular User: a User-role session is pinned to its
// own entries no matter whose id is in the path, and a User-role subject is
// shown only their own trail. Staff sessions viewing staff subjects see all.
func historyScope(viewerID uint, viewerRole int, subjectID uint, subjectRole int) (actorID uint, restricted bool) {
	if viewerRole == models.RoleUser {
		return viewerID, true
	}
	if subjectRole == models.RoleUser {
		return subjectID, true
	}
	return 0, false
}

// ListHistory returns the audit trail for the user identified by subjectID,
// scoped by both the subject's role and the caller's session role. Pass limit
// 0 for no cap.
func (r *Repo) ListHistory(ctx context.Context, subjectID, viewerID uint, viewerRole, limit int) ([]HistoryRow, error) {
	subject, err := r.FindUserByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	q := r.DB.WithContext(ctx).
		Table(models.ActivityLogTable+" l").
		Select("l.id, l.action_type AS type, l.details, l.action_date AS date, u.full_name AS user_name").
		Joins("LEFT JOIN " + models.UserTable + " u ON l.user_id = u.id").
		Order("l.action_date DESC")
	if actorID, restricted := historyScope(viewerID, viewerRole, subjectID, subject.RoleID); restricted {
		q = q.Where("l.user_id = ?", actorID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []HistoryRow
	err = q.Scan(&rows).Error
	return rows, err
}

// ListNotifications applies the visibility rule: User-role viewers see
// notifications targeted at them, staff see broadcasts (no target). Pass
// limit 0 for no cap.
func (r *Repo) ListNotifications(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	viewer, err := r.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	q := r.DB.WithContext(ctx).Model(&models.Notification{}).Order("created_at DESC")
	if viewer.RoleID == models.RoleUser {
		q = q.Where("user_id = ?", userID)
	} else {
		q = q.Where("user_id IS NULL")
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ns []models.Notification
	err = q.Find(&ns).Error
	return ns, err
}

// MarkNotificationRead flips a single notification to read.
func (r *Repo) MarkNotificationRead(ctx context.Context, notificationID uint) error {
	res := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllNotificationsRead flips every unread notification the viewer can see
// and reports how many were affected.
func (r *Repo) MarkAllNotificationsRead(ctx context.Context, userID uint) (int64, error) {
	viewer, err := r.FindUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	q := r.DB.WithContext(ctx).Model(&models.Notification{}).Where("is_read = FALSE")
	if viewer.RoleID == models.RoleUser {
		q = q.Where("user_id = ?", userID)
	} else {
		q = q.Where("user_id IS NULL")
	}
	res := q.Update("is_read", true)
	return res.RowsAffected, res.Error
}
