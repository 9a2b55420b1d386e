package internal

import (
	"net/http"

	"crewops/internal/controllers"
	"crewops/internal/providers"
	"crewops/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/login", http.HandlerFunc(apiController.Login))
	routers.Post("/logout", http.HandlerFunc(apiController.Logout))
	routers.Post("/checkin", http.HandlerFunc(apiController.CheckIn))
	routers.Post("/checkout", http.HandlerFunc(apiController.CheckOut))
	routers.Get("/attendance", http.HandlerFunc(apiController.GetAttendance))
	routers.Post("/tasks/add", http.HandlerFunc(apiController.AddTask))
	routers.Post("/tasks/toggle", http.HandlerFunc(apiController.ToggleTask))
	routers.Get("/tasks", http.HandlerFunc(apiController.GetTasks))
	routers.Post("/logs", http.HandlerFunc(apiController.AddLog))
	routers.Post("/items/add", http.HandlerFunc(apiController.AddItem))
	routers.Get("/items", http.HandlerFunc(apiController.GetItems))
	routers.Post("/items/status", http.HandlerFunc(apiController.TransitionItem))
	routers.Post("/week", http.HandlerFunc(apiController.SetWeek))
	routers.Get("/weekly", http.HandlerFunc(apiController.GetWeekly))
	routers.Get("/summary", http.HandlerFunc(apiController.GetSummary))
	return routers
}
