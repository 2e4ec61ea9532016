package routes

import (
	"net/http"

	"eventconnect/analytics"
	"eventconnect/auth"
	"eventconnect/checkin"
	"eventconnect/events"
	"eventconnect/middleware"
	"eventconnect/profile"
	"eventconnect/ratelim"
	"eventconnect/registrations"
	"eventconnect/search"
	"eventconnect/userdata"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/uploads/*filepath", http.Dir("static/uploads"))
}

func AddAuthRoutes(router *httprouter.Router) {
	router.POST("/api/auth/register", ratelim.RateLimit(auth.Register))
	router.POST("/api/auth/login", ratelim.RateLimit(auth.Login))
	router.POST("/api/auth/refresh", ratelim.RateLimit(auth.RefreshToken))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
}

func AddEventsRoutes(router *httprouter.Router) {
	router.GET("/api/events", events.GetEvents)
	router.POST("/api/events", ratelim.RateLimit(middleware.Authenticate(events.CreateEvent)))
	router.GET("/api/events/:eventid", middleware.OptionalAuth(events.GetEvent))
	router.PUT("/api/events/:eventid", middleware.Authenticate(events.EditEvent))
	router.DELETE("/api/events/:eventid", middleware.Authenticate(events.DeleteEvent))
	router.GET("/api/events/:eventid/forms", events.GetEventForms)
	router.GET("/api/events/:eventid/forms/:formid", events.GetFormControls)
}

func AddRegistrationRoutes(router *httprouter.Router) {
	router.POST("/api/events/:eventid/register", ratelim.RateLimit(middleware.Authenticate(registrations.RegisterForEvent)))
	router.GET("/api/events/:eventid/registrations/check", middleware.Authenticate(registrations.CheckRegistration))
	router.DELETE("/api/events/:eventid/register", middleware.Authenticate(registrations.CancelRegistration))
	router.GET("/api/events/:eventid/attendees", middleware.Authenticate(registrations.GetAttendees))
	router.GET("/api/registrations", middleware.Authenticate(registrations.MyRegistrations))
}

func AddCheckinRoutes(router *httprouter.Router) {
	router.POST("/api/events/:eventid/checkin", middleware.Authenticate(checkin.BulkCheckInHandler))
	router.POST("/api/events/:eventid/checkin/:attendeeid", middleware.Authenticate(checkin.CheckInAttendee))
	router.POST("/api/events/:eventid/scan", middleware.Authenticate(checkin.ScanCheckIn))
	router.GET("/api/events/:eventid/verify", middleware.Authenticate(checkin.VerifyCode))
	router.GET("/api/events/:eventid/badge", middleware.Authenticate(checkin.DownloadBadge))
	router.GET("/ws/events/:eventid/checkins", middleware.Authenticate(checkin.CheckInFeed))
}

func AddAnalyticsRoutes(router *httprouter.Router) {
	router.GET("/api/events/:eventid/analytics", middleware.Authenticate(analytics.EventAnalytics))
}

func AddSearchRoutes(router *httprouter.Router) {
	router.GET("/api/search/events", search.SearchEvents)
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetMyProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.EditProfile))
	router.PUT("/api/profile/avatar", middleware.Authenticate(profile.UploadAvatar))
	router.GET("/api/user/:userid", profile.GetUserProfile)
	router.GET("/api/user/:userid/data/:entitytype", middleware.Authenticate(userdata.GetUserData))
}
