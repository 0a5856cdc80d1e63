package main

import (
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"

	"github.com/splitleaseteam/splitlease-monorepo-sub002/routes"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/services"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/storage"
	"github.com/splitleaseteam/splitlease-monorepo-sub002/utils"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the web dashboard
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})
	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		if err := ctx.ReadJSON(&tokenInput); err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	listingAPI := app.Party("/api/listing")
	{
		listingAPI.Use(accessTokenVerifierMiddleware)
		listingAPI.Post("/", routes.CreateListing)
		listingAPI.Get("/host", routes.GetHostListings)
		listingAPI.Get("/{id}", routes.GetListing)
		listingAPI.Get("/{id}/proposals", routes.GetProposalsByListingID)
		listingAPI.Post("/{id}/proposals", routes.CreateProposal)
	}

	proposalAPI := app.Party("/api/proposals")
	{
		proposalAPI.Use(accessTokenVerifierMiddleware)
		proposalAPI.Get("/host", routes.GetHostProposals)
		proposalAPI.Get("/{id}/status", routes.GetProposalStatusInfo)
		proposalAPI.Get("/{id}/negotiation", routes.GetNegotiationComparison)
		proposalAPI.Get("/{id}/cancellation-condition", routes.GetCancellationCondition)
		proposalAPI.Post("/{id}/cancel", routes.CancelProposal)
		proposalAPI.Post("/{id}/counteroffer", routes.SubmitCounteroffer)
		proposalAPI.Post("/{id}/counteroffer/accept", routes.AcceptCounterofferRoute)
		proposalAPI.Post("/{id}/counteroffer/decline", routes.DeclineCounterofferRoute)
		proposalAPI.Patch("/{id}", routes.ModifyProposal)
		proposalAPI.Delete("/{id}", routes.DeleteProposal)
	}

	userAPI := app.Party("/api/user")
	{
		userAPI.Post("/register", routes.Register)
		userAPI.Post("/login", routes.Login)
		userAPI.Get("/{id}/proposals", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserProposals)
		userAPI.Get("/{id}/leases", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserLeases)
	}

	leaseAPI := app.Party("/api/leases")
	{
		leaseAPI.Use(accessTokenVerifierMiddleware)
		leaseAPI.Get("/{id}", routes.GetLease)
		leaseAPI.Get("/{id}/readiness", routes.GetLeaseReadiness)
		leaseAPI.Post("/{id}/documents", routes.GenerateLeaseDocuments)
	}

	buyoutAPI := app.Party("/api/buyout")
	{
		buyoutAPI.Use(accessTokenVerifierMiddleware)
		buyoutAPI.Get("/quote", routes.GetBuyoutQuote)
	}

	notificationAPI := app.Party("/api/notifications")
	{
		notificationAPI.Use(accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware)
		notificationAPI.Get("/", routes.GetUserNotifications)
		notificationAPI.Patch("/{id}/read", routes.MarkNotificationRead)
	}

	adminAPI := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		adminAPI.Get("/proposals", routes.AdminListProposals)
		adminAPI.Post("/proposals/{id}/cancel", routes.AdminCancelProposal)
		adminAPI.Post("/proposals/{id}/counteroffer/accept", routes.AdminAcceptCounteroffer)
		adminAPI.Get("/lease-intents", routes.AdminListLeaseIntents)
	}

	// Retry pending lease-creation intents in the background.
	services.StartLeaseIntentSweeper(time.Minute)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
