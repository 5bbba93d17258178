package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/giftgrug/giftgrug/internal/dictionary"
	"github.com/giftgrug/giftgrug/internal/middleware"
	"github.com/giftgrug/giftgrug/pkg/models"
)

type specialSunRequest struct {
	Name             string `json:"name" binding:"required"`
	RecipientType    string `json:"recipient_type" binding:"required"`
	OccasionType     string `json:"occasion_type" binding:"required"`
	Date             string `json:"date" binding:"required"`
	Notes            string `json:"notes"`
	Reminder4Enabled *bool  `json:"reminder_4_enabled"`
}

func (req *specialSunRequest) toModel() (*models.SpecialSun, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, err
	}

	reminder4 := true
	if req.Reminder4Enabled != nil {
		reminder4 = *req.Reminder4Enabled
	}

	return &models.SpecialSun{
		Name:             req.Name,
		RecipientType:    req.RecipientType,
		OccasionType:     req.OccasionType,
		Date:             date,
		ReminderDays:     models.ReminderLeadLong,
		Notes:            req.Notes,
		Reminder4Enabled: reminder4,
	}, nil
}

func validSunTypes(recipientType, occasionType string) bool {
	recipientOK := false
	for _, r := range dictionary.RecipientTypes {
		if r.ID == recipientType {
			recipientOK = true
			break
		}
	}
	occasionOK := false
	for _, o := range dictionary.OccasionTypes {
		if o.ID == occasionType {
			occasionOK = true
			break
		}
	}
	return recipientOK && occasionOK
}

// createSpecialSun records an important date to be reminded about
func (api *API) createSpecialSun(c *gin.Context) {
	var req specialSunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Special sun need name and day."})
		return
	}
	if !validSunTypes(req.RecipientType, req.OccasionType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Grug not know this kind of sun."})
		return
	}

	sun, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Grug not read this day. Use year-month-day."})
		return
	}

	userID, _ := middleware.GetUserID(c)
	sun.UserID = userID

	if err := api.suns.CreateSpecialSun(c.Request.Context(), sun); err != nil {
		api.logger.ErrorWithErr("Special sun create failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop calendar rock. Try again?"})
		return
	}

	c.JSON(http.StatusCreated, sun)
}

// listSpecialSuns serves the caller's recorded dates
func (api *API) listSpecialSuns(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	suns, err := api.suns.ListUserSpecialSuns(c.Request.Context(), userID)
	if err != nil {
		api.logger.ErrorWithErr("Special sun listing failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop calendar rock. Try again?"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"special_suns": suns})
}

// ownedSpecialSun loads a special sun and checks it belongs to the caller
func (api *API) ownedSpecialSun(c *gin.Context) (*models.SpecialSun, bool) {
	userID, _ := middleware.GetUserID(c)

	sun, err := api.suns.GetSpecialSun(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grug not know this sun."})
		return nil, false
	}
	if sun.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not man's sun."})
		return nil, false
	}

	return sun, true
}

// updateSpecialSun edits an important date
func (api *API) updateSpecialSun(c *gin.Context) {
	sun, ok := api.ownedSpecialSun(c)
	if !ok {
		return
	}

	var req specialSunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Special sun need name and day."})
		return
	}
	if !validSunTypes(req.RecipientType, req.OccasionType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Grug not know this kind of sun."})
		return
	}

	updated, err := req.toModel()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Grug not read this day. Use year-month-day."})
		return
	}
	updated.ID = sun.ID

	if err := api.suns.UpdateSpecialSun(c.Request.Context(), updated); err != nil {
		api.logger.ErrorWithErr("Special sun update failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop calendar rock. Try again?"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// deleteSpecialSun forgets an important date
func (api *API) deleteSpecialSun(c *gin.Context) {
	sun, ok := api.ownedSpecialSun(c)
	if !ok {
		return
	}

	if err := api.suns.DeleteSpecialSun(c.Request.Context(), sun.ID); err != nil {
		api.logger.ErrorWithErr("Special sun delete failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Grug drop calendar rock. Try again?"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sun forgotten."})
}

// markRemembered handles the one-click link in reminder messages. It flips
// the remembered flag, which suppresses the follow-up reminder, and sends
// the man back to his cave.
func (api *API) markRemembered(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Redirect(http.StatusFound, "/cave?error=missing-id")
		return
	}

	if err := api.suns.MarkRemembered(c.Request.Context(), id); err != nil {
		c.Redirect(http.StatusFound, "/cave?error=update-failed")
		return
	}

	c.Redirect(http.StatusFound, "/cave?remembered=true")
}
