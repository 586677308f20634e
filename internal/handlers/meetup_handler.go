package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/meetapp/internal/helpers"
	"github.com/joshua-takyi/meetapp/internal/middleware"
	"github.com/joshua-takyi/meetapp/internal/models"
	"github.com/joshua-takyi/meetapp/internal/services"
)

// respondError answers request errors directly and leaves anything else to
// middleware.ErrorHandler.
func respondError(c *gin.Context, err error) {
	switch services.KindOf(err) {
	case services.KindValidation:
		c.JSON(http.StatusBadRequest, models.ErrorResponse(services.MsgValidationFails))
	case services.KindNotFound:
		c.JSON(http.StatusNotFound, models.ErrorResponse(services.MsgMeetupNotFound))
	case services.KindForbidden:
		var svcErr *services.Error
		errors.As(err, &svcErr)
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(svcErr.Message))
	default:
		_ = c.Error(err)
	}
}

func pageParam(c *gin.Context) (int, bool) {
	page, ok := helpers.ParsePage(c.Query("page"))
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(services.MsgValidationFails))
		return 0, false
	}
	return page, true
}

// idParam answers 404 for ids that cannot name a stored meetup.
func idParam(c *gin.Context) (uint, bool) {
	id, ok := helpers.ParseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse(services.MsgMeetupNotFound))
		return 0, false
	}
	return id, true
}

func actingUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.ActingUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("Token invalid"))
		return 0, false
	}
	return userID, true
}

func ListMeetups(ms *services.MeetupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, ok := pageParam(c)
		if !ok {
			return
		}

		meetups, err := ms.List(c.Request.Context(), page)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, meetups)
	}
}

func ShowMeetup(ms *services.MeetupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		meetup, err := ms.Show(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, meetup)
	}
}

// ListUserMeetups lists the meetups organized by the authenticated user.
func ListUserMeetups(ms *services.MeetupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUser(c)
		if !ok {
			return
		}
		page, ok := pageParam(c)
		if !ok {
			return
		}

		meetups, err := ms.ListByUser(c.Request.Context(), userID, page)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, meetups)
	}
}

func CreateMeetup(ms *services.MeetupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUser(c)
		if !ok {
			return
		}

		var input services.CreateMeetupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(services.MsgValidationFails))
			return
		}

		meetup, err := ms.Create(c.Request.Context(), userID, input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, meetup)
	}
}

func UpdateMeetup(ms *services.MeetupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		var input services.UpdateMeetupInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(services.MsgValidationFails))
			return
		}

		meetup, err := ms.Update(c.Request.Context(), id, userID, input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, meetup)
	}
}

func DeleteMeetup(ms *services.MeetupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUser(c)
		if !ok {
			return
		}
		id, ok := idParam(c)
		if !ok {
			return
		}

		if err := ms.Cancel(c.Request.Context(), id, userID); err != nil {
			respondError(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}
