package httpapi

import (
	"net/http"

	"github.com/riskibarqy/novastream/internal/domain/account"
)

type saveAccountRequest struct {
	Plan        string            `json:"plan" validate:"required,max=50"`
	MemberSince string            `json:"memberSince" validate:"omitempty,datetime=2006-01-02"`
	Profiles    []account.Profile `json:"profiles" validate:"required,min=1"`
}

type setActiveProfileRequest struct {
	ProfileID int64 `json:"profileId" validate:"required,gt=0"`
}

type updateProfileRequest struct {
	FirstName  *string `json:"firstName" validate:"omitnil,min=1,max=100"`
	MiddleName *string `json:"middleName" validate:"omitempty,max=100"`
	LastName   *string `json:"lastName" validate:"omitempty,max=100"`
	Avatar     *string `json:"avatar" validate:"omitempty,max=2048"`
}

type notificationSettingsRequest struct {
	LiveMatchAlerts        *bool `json:"liveMatchAlerts" validate:"required"`
	UpcomingMatchReminders *bool `json:"upcomingMatchReminders" validate:"required"`
	HighlightsReady        *bool `json:"highlightsReady" validate:"required"`
	WeeklyNewsletter       *bool `json:"weeklyNewsletter" validate:"required"`
	Promotions             *bool `json:"promotions" validate:"required"`
}

type addActivityRequest struct {
	Title string `json:"title" validate:"required,max=300"`
}

type changePlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

type activeProfileDTO struct {
	ProfileID int64           `json:"profileId"`
	Profile   account.Profile `json:"profile"`
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAccount")
	defer span.End()

	acc, err := h.accountService.GetAccount(ctx, clientIDFromContext(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "get account failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, acc)
}

func (h *Handler) SaveAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveAccount")
	defer span.End()

	var req saveAccountRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	acc, err := h.accountService.SaveAccount(ctx, clientIDFromContext(ctx), account.Account{
		Plan:        req.Plan,
		MemberSince: req.MemberSince,
		Profiles:    req.Profiles,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save account failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, acc)
}

func (h *Handler) GetActiveProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveProfile")
	defer span.End()

	profile, err := h.accountService.ActiveProfile(ctx, clientIDFromContext(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "get active profile failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, activeProfileDTO{ProfileID: profile.ID, Profile: profile})
}

func (h *Handler) SetActiveProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetActiveProfile")
	defer span.End()

	var req setActiveProfileRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.accountService.SetActiveProfileID(ctx, clientIDFromContext(ctx), req.ProfileID); err != nil {
		h.logger.WarnContext(ctx, "set active profile failed", "profile_id", req.ProfileID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"profileId": req.ProfileID})
}

func (h *Handler) AddProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddProfile")
	defer span.End()

	profile, err := h.accountService.AddProfile(ctx, clientIDFromContext(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "add profile failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateProfile")
	defer span.End()

	profileID, err := pathID(r, "profileID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req updateProfileRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.accountService.UpdateProfile(ctx, clientIDFromContext(ctx), profileID, account.ProfileUpdate{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Avatar:     req.Avatar,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update profile failed", "profile_id", profileID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, profile)
}

func (h *Handler) RemoveProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveProfile")
	defer span.End()

	profileID, err := pathID(r, "profileID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	acc, err := h.accountService.RemoveProfile(ctx, clientIDFromContext(ctx), profileID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove profile failed", "profile_id", profileID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, acc)
}

func (h *Handler) UpdateNotificationSettings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateNotificationSettings")
	defer span.End()

	profileID, err := pathID(r, "profileID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req notificationSettingsRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.accountService.UpdateNotificationSettings(ctx, clientIDFromContext(ctx), profileID, account.NotificationSettings{
		LiveMatchAlerts:        *req.LiveMatchAlerts,
		UpcomingMatchReminders: *req.UpcomingMatchReminders,
		HighlightsReady:        *req.HighlightsReady,
		WeeklyNewsletter:       *req.WeeklyNewsletter,
		Promotions:             *req.Promotions,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update notification settings failed", "profile_id", profileID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, profile)
}

func (h *Handler) AddWatchedActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddWatchedActivity")
	defer span.End()

	var req addActivityRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	added, err := h.accountService.AddWatchedActivity(ctx, clientIDFromContext(ctx), req.Title)
	if err != nil {
		h.logger.ErrorContext(ctx, "add watched activity failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"added": added})
}

func (h *Handler) RemoveWatchedActivity(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveWatchedActivity")
	defer span.End()

	activityID, err := pathID(r, "activityID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	removed, err := h.accountService.RemoveWatchedActivity(ctx, clientIDFromContext(ctx), activityID)
	if err != nil {
		h.logger.ErrorContext(ctx, "remove watched activity failed", "activity_id", activityID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlans")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, h.accountService.ListPlans())
}

func (h *Handler) ChangePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangePlan")
	defer span.End()

	var req changePlanRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	acc, err := h.accountService.ChangePlan(ctx, clientIDFromContext(ctx), req.Plan)
	if err != nil {
		h.logger.WarnContext(ctx, "change plan failed", "plan", req.Plan, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, acc)
}
