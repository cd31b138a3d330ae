package show

import (
	"fmt"
	"strconv"
	"time"

	"station-api/internal/auth"
	"station-api/internal/database"
	"station-api/internal/middleware"
	"station-api/internal/models"
	"station-api/internal/permissions"
	"station-api/internal/query"
	"station-api/internal/response"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var sortFields = []string{"id", "start_date", "end_date"}

// Show bodies allow basic user markup, unlike the plain-text wish form.
var bodyPolicy = bluemonday.UGCPolicy()

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(raw string) (time.Time, error) {
	var err error
	for _, layout := range dateFormats {
		var t time.Time
		if t, err = time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

type ModeratorInput struct {
	ID      uint  `json:"id"`
	Primary *bool `json:"primary"`
}

type showInput struct {
	Title      string           `json:"title"`
	Body       *string          `json:"body"`
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`
	IsLive     *bool            `json:"is_live"`
	Enabled    *bool            `json:"enabled"`
	Moderators []ModeratorInput `json:"moderators"`
}

func validateInput(in *showInput) (start, end time.Time, errors map[string]string) {
	errors = map[string]string{}

	if in.Title == "" || len(in.Title) > 255 {
		errors["title"] = "title is required and may not be greater than 255 characters"
	}

	var err error
	if start, err = parseDate(in.StartDate); err != nil {
		errors["start_date"] = "start_date must be a valid date"
	}
	if end, err = parseDate(in.EndDate); err != nil {
		errors["end_date"] = "end_date must be a valid date"
	} else if _, ok := errors["start_date"]; !ok && !end.After(start) {
		errors["end_date"] = "end_date must be after start_date"
	}

	if in.IsLive == nil {
		errors["is_live"] = "is_live is required"
	}
	if in.Enabled == nil {
		errors["enabled"] = "enabled is required"
	}

	if len(in.Moderators) == 0 {
		errors["moderators"] = "at least one moderator is required"
	}
	seen := map[uint]bool{}
	for _, m := range in.Moderators {
		if m.ID == 0 || m.Primary == nil || seen[m.ID] {
			errors["moderators"] = "the selected moderators are invalid"
			break
		}
		seen[m.ID] = true
	}

	return start, end, errors
}

// splitModerators returns the single primary moderator and the rest. The
// caller has already checked there is exactly one primary.
func splitModerators(mods []ModeratorInput) (primary ModeratorInput, others []ModeratorInput) {
	for _, m := range mods {
		if *m.Primary {
			primary = m
		} else {
			others = append(others, m)
		}
	}
	return primary, others
}

func countPrimaries(mods []ModeratorInput) int {
	n := 0
	for _, m := range mods {
		if *m.Primary {
			n++
		}
	}
	return n
}

func resolveModerators(mods []ModeratorInput) (map[uint]models.User, bool) {
	ids := make([]uint, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, m.ID)
	}

	var users []models.User
	if err := database.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, false
	}
	if len(users) != len(ids) {
		return nil, false
	}

	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, true
}

func loadShow(id int) (*models.Show, error) {
	var s models.Show
	err := database.DB.Preload("Moderators.Moderator").First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// canSee applies the disabled-show visibility rule: disabled shows exist
// only for their primary moderator and holders of the view-disabled
// permission. Everyone else gets the same 404 a missing id would.
func canSee(s *models.Show, userID uint) bool {
	if s.Enabled {
		return true
	}
	if userID == 0 {
		return false
	}
	if IsPrimaryModerator(database.DB, s.ID, userID) {
		return true
	}
	return middleware.HasPermissionTo(userID, permissions.CanViewDisabledShowsOthers)
}

func ListShowsHandler(c *fiber.Ctx) error {
	userID := auth.CurrentUserID(c)

	errors := map[string]string{}
	start, err := parseDate(c.Query("start_date"))
	if err != nil {
		errors["start_date"] = "start_date is required and must be a valid date"
	}
	end, err := parseDate(c.Query("end_date"))
	if err != nil {
		errors["end_date"] = "end_date is required and must be a valid date"
	} else if _, ok := errors["start_date"]; !ok && !end.After(start) {
		errors["end_date"] = "end_date must be after start_date"
	}

	live, ok := parseBoolQuery(c, "live")
	if !ok {
		errors["live"] = "live must be a boolean"
	}

	moderatorIDs, ok := parseIDsQuery(c, "moderator")
	if !ok {
		errors["moderator"] = "the selected moderators are invalid"
	}

	primary, ok := parseBoolQuery(c, "primary")
	if !ok || (primary != nil && len(moderatorIDs) == 0) {
		errors["primary"] = "primary requires a moderator filter"
	}

	order, ok := query.Sort(c.Query("sort"), sortFields, "start_date")
	if !ok {
		errors["sort"] = "the selected sort is invalid"
	}

	perPage, ok := query.PerPage(c, 25, 50)
	if !ok {
		errors["per_page"] = "per_page must be between 1 and 50"
	}

	if len(errors) > 0 {
		return response.ValidationError(c, errors)
	}

	// Guests only see a bounded calendar window.
	if userID == 0 {
		today := startOfDay(time.Now())
		if start.Before(today) {
			return response.BadRequest(c, "Start date must be greater than today.")
		}
		if end.After(today.AddDate(0, 1, 0)) {
			return response.BadRequest(c, "End date must be less than 30 days from today.")
		}
	}

	q := database.DB.Model(&models.Show{}).
		Where("(start_date BETWEEN ? AND ?) OR (end_date BETWEEN ? AND ?)", start, end, start, end)

	if userID == 0 {
		q = q.Where("enabled = ?", true)
	} else if !middleware.HasPermissionTo(userID, permissions.CanViewDisabledShowsOthers) {
		// Disabled shows stay visible to their own primary moderator.
		q = q.Where("enabled = ? OR id IN (?)", true,
			database.DB.Table("show_moderators").Select("show_id").
				Where("moderator_id = ? AND \"primary\" = ?", userID, true))
	}

	if live != nil {
		q = q.Where("is_live = ?", *live)
	}

	if len(moderatorIDs) > 0 {
		sub := database.DB.Table("show_moderators").Select("show_id").
			Where("moderator_id IN ?", moderatorIDs)
		if primary != nil {
			sub = sub.Where("\"primary\" = ?", *primary)
		}
		q = q.Where("id IN (?)", sub)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return response.InternalError(c, err)
	}

	var shows []models.Show
	err = q.Preload("Moderators.Moderator").
		Order(order).
		Scopes(query.Paginate(query.Page(c), perPage)).
		Find(&shows).Error
	if err != nil {
		return response.InternalError(c, err)
	}

	return response.SuccessWithMeta(c,
		NewResourceList(shows, userID != 0),
		response.CalculateMeta(query.Page(c), perPage, total))
}

func CreateShowHandler(c *fiber.Ctx) error {
	userID := auth.CurrentUserID(c)

	var in showInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	start, end, errors := validateInput(&in)
	if len(errors) > 0 {
		return response.ValidationError(c, errors)
	}

	users, ok := resolveModerators(in.Moderators)
	if !ok {
		return response.ValidationError(c, map[string]string{
			"moderators": "the selected moderators are invalid",
		})
	}

	if countPrimaries(in.Moderators) != 1 {
		return response.BadRequest(c, "There must be exactly one primary moderator.")
	}
	primary, others := splitModerators(in.Moderators)

	if primary.ID != userID && !middleware.HasPermissionTo(userID, permissions.CanCreateShowsOthers) {
		return response.Forbidden(c, "You are not allowed to create shows for others.")
	}

	overlap, err := HasOverlap(database.DB, start, end, 0)
	if err != nil {
		return response.InternalError(c, err)
	}
	if overlap {
		return response.BadRequest(c, "There is already a show scheduled for this time.")
	}

	if !middleware.HasPermissionTo(primary.ID, permissions.CanBePrimaryModerator) {
		return response.BadRequest(c, fmt.Sprintf(
			"The primary moderator, %q does not have the permission to be a primary moderator.",
			users[primary.ID].Name))
	}

	if len(others) > 0 {
		if !middleware.HasPermissionTo(userID, permissions.CanAddModerators) {
			return response.Forbidden(c, "You are not allowed to add non-primary moderators.")
		}
		for _, m := range others {
			if !middleware.HasPermissionTo(m.ID, permissions.CanBeModerator) {
				return response.BadRequest(c, fmt.Sprintf(
					"%q does not have the permission to be a non-primary moderator.",
					users[m.ID].Name))
			}
		}
	}

	if *in.IsLive && !middleware.HasPermissionTo(userID, permissions.CanSetLiveShows) {
		return response.Forbidden(c, "You are not allowed to set shows live.")
	}
	if *in.Enabled && !middleware.HasPermissionTo(userID, permissions.CanEnableShows) {
		return response.Forbidden(c, "You are not allowed to enable shows.")
	}

	s := models.Show{
		Title:     in.Title,
		Body:      sanitizeBody(in.Body),
		StartDate: &start,
		EndDate:   &end,
		IsLive:    *in.IsLive,
		Enabled:   *in.Enabled,
	}

	if err := database.DB.Create(&s).Error; err != nil {
		return response.InternalError(c, err)
	}

	// No partially assigned show may survive a failed moderator attach.
	if err := SyncModerators(database.DB, s.ID, in.Moderators); err != nil {
		database.DB.Where("show_id = ?", s.ID).Delete(&models.ShowModerator{})
		database.DB.Delete(&s)
		return response.ErrorWithDebug(c, fiber.StatusInternalServerError, "Something went wrong.", err)
	}

	created, err := loadShow(int(s.ID))
	if err != nil {
		return response.InternalError(c, err)
	}

	return response.Created(c, NewResource(*created, true))
}

func GetShowHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid show ID")
	}

	userID := auth.CurrentUserID(c)

	s, err := loadShow(id)
	if err != nil || !canSee(s, userID) {
		return response.NotFoundModel(c, "Show", id)
	}

	return response.Success(c, NewResource(*s, userID != 0))
}

func UpdateShowHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid show ID")
	}

	userID := auth.CurrentUserID(c)

	s, err := loadShow(id)
	if err != nil || !canSee(s, userID) {
		return response.NotFoundModel(c, "Show", id)
	}

	if s.LockedBy != nil && *s.LockedBy != userID {
		return response.Locked(c, "The show is currently locked by another user.")
	}

	var in showInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	start, end, errors := validateInput(&in)
	if len(errors) > 0 {
		return response.ValidationError(c, errors)
	}

	users, ok := resolveModerators(in.Moderators)
	if !ok {
		return response.ValidationError(c, map[string]string{
			"moderators": "the selected moderators are invalid",
		})
	}

	isPrimary := IsPrimaryModerator(database.DB, s.ID, userID)
	if !isPrimary && !middleware.HasPermissionTo(userID, permissions.CanUpdateShowsOthers) {
		return response.Forbidden(c, "You are not allowed to update shows of others.")
	}

	overlap, err := HasOverlap(database.DB, start, end, s.ID)
	if err != nil {
		return response.InternalError(c, err)
	}
	if overlap {
		return response.BadRequest(c, "There is already a show scheduled for this time.")
	}

	if countPrimaries(in.Moderators) != 1 {
		return response.BadRequest(c, "There must be exactly one primary moderator.")
	}
	primary, others := splitModerators(in.Moderators)

	oldPrimaryID := PrimaryModeratorID(database.DB, s.ID)
	primaryChanged := primary.ID != oldPrimaryID && !(oldPrimaryID == 0 && primary.ID == userID)
	if primaryChanged {
		if !middleware.HasPermissionTo(userID, permissions.CanUpdateShowsOthers) {
			return response.Forbidden(c, "You are not allowed to change the primary moderator.")
		}
		if !middleware.HasPermissionTo(primary.ID, permissions.CanBePrimaryModerator) {
			return response.BadRequest(c, fmt.Sprintf(
				"The new primary moderator, %q does not have the permission to be a primary moderator.",
				users[primary.ID].Name))
		}
	}

	newOtherIDs := make([]uint, 0, len(others))
	for _, m := range others {
		newOtherIDs = append(newOtherIDs, m.ID)
	}
	sortIDs(newOtherIDs)
	if !sameIDSet(newOtherIDs, NonPrimaryModeratorIDs(database.DB, s.ID)) {
		if !middleware.HasPermissionTo(userID, permissions.CanAddModerators) {
			return response.Forbidden(c, "You are not allowed to add non-primary moderators.")
		}
		for _, m := range others {
			if !middleware.HasPermissionTo(m.ID, permissions.CanBeModerator) {
				return response.BadRequest(c, fmt.Sprintf(
					"%q does not have the permission to be a non-primary moderator.",
					users[m.ID].Name))
			}
		}
	}

	if *in.IsLive != s.IsLive && !middleware.HasPermissionTo(userID, permissions.CanSetLiveShows) {
		return response.Forbidden(c, "You are not allowed to change the live status of shows.")
	}
	if *in.Enabled != s.Enabled && !middleware.HasPermissionTo(userID, permissions.CanEnableShows) {
		return response.Forbidden(c, "You are not allowed to enable or disable shows.")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		s.Title = in.Title
		s.Body = sanitizeBody(in.Body)
		s.StartDate = &start
		s.EndDate = &end
		s.IsLive = *in.IsLive
		s.Enabled = *in.Enabled
		if err := tx.Omit("Moderators").Save(s).Error; err != nil {
			return err
		}
		return SyncModerators(tx, s.ID, in.Moderators)
	})
	if err != nil {
		return response.ErrorWithDebug(c, fiber.StatusInternalServerError, "Something went wrong.", err)
	}

	updated, err := loadShow(int(s.ID))
	if err != nil {
		return response.InternalError(c, err)
	}

	return response.Success(c, NewResource(*updated, true))
}

func DeleteShowHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid show ID")
	}

	userID := auth.CurrentUserID(c)

	s, err := loadShow(id)
	if err != nil || !canSee(s, userID) {
		return response.NotFoundModel(c, "Show", id)
	}

	if s.LockedBy != nil && *s.LockedBy != userID {
		return response.Locked(c, "The show is currently locked by another user.")
	}

	if !IsPrimaryModerator(database.DB, s.ID, userID) &&
		!middleware.HasPermissionTo(userID, permissions.CanDeleteShowsOthers) {
		return response.Forbidden(c, "You are not allowed to delete shows of others.")
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("show_id = ?", s.ID).Delete(&models.ShowModerator{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Show{}, s.ID).Error
	})
	if err != nil {
		return response.InternalError(c, err)
	}

	return response.NoContent(c)
}

// LockShowHandler takes the edit lock for the caller. Re-locking a show
// the caller already holds is a no-op.
func LockShowHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid show ID")
	}

	userID := auth.CurrentUserID(c)

	s, err := loadShow(id)
	if err != nil || !canSee(s, userID) {
		return response.NotFoundModel(c, "Show", id)
	}

	if s.LockedBy != nil && *s.LockedBy != userID {
		return response.Locked(c, "The show is currently locked by another user.")
	}

	if !IsPrimaryModerator(database.DB, s.ID, userID) &&
		!middleware.HasPermissionTo(userID, permissions.CanUpdateShowsOthers) {
		return response.Forbidden(c, "You are not allowed to update shows of others.")
	}

	if err := database.DB.Model(s).Update("locked_by", userID).Error; err != nil {
		return response.InternalError(c, err)
	}
	s.LockedBy = &userID

	return response.Success(c, NewResource(*s, true))
}

// UnlockShowHandler releases the edit lock. Only the lock owner or a
// holder of the update-others permission may release someone else's lock.
func UnlockShowHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid show ID")
	}

	userID := auth.CurrentUserID(c)

	s, err := loadShow(id)
	if err != nil || !canSee(s, userID) {
		return response.NotFoundModel(c, "Show", id)
	}

	if s.LockedBy != nil && *s.LockedBy != userID &&
		!middleware.HasPermissionTo(userID, permissions.CanUpdateShowsOthers) {
		return response.Locked(c, "The show is currently locked by another user.")
	}

	if err := database.DB.Model(s).Update("locked_by", nil).Error; err != nil {
		return response.InternalError(c, err)
	}
	s.LockedBy = nil

	return response.Success(c, NewResource(*s, true))
}

func sanitizeBody(body *string) *string {
	if body == nil {
		return nil
	}
	clean := bodyPolicy.Sanitize(*body)
	return &clean
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// parseBoolQuery returns nil when the parameter is absent.
func parseBoolQuery(c *fiber.Ctx, key string) (*bool, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// parseIDsQuery reads a repeatable integer parameter and checks the ids
// against the users table.
func parseIDsQuery(c *fiber.Ctx, key string) ([]uint, bool) {
	raw := c.Context().QueryArgs().PeekMulti(key)
	if len(raw) == 0 {
		return nil, true
	}

	ids := make([]uint, 0, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseUint(string(r), 10, 64)
		if err != nil || id == 0 {
			return nil, false
		}
		ids = append(ids, uint(id))
	}

	var count int64
	if err := database.DB.Model(&models.User{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return nil, false
	}
	if count != int64(len(ids)) {
		return nil, false
	}
	return ids, true
}
