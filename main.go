package main

import (
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"attendance-register-go/console"
	"attendance-register-go/handlers"
	"attendance-register-go/store"
)

func main() {
	interactive := flag.Bool("console", false, "run the interactive console instead of the HTTP server")
	rosterPath := flag.String("roster", "", "roster file to load at startup (<id>,<name> per line)")
	flag.Parse()

	// Optional .env for SERVER_ADDR / GIN_MODE; absence is not an error.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	register := store.New()

	if *rosterPath != "" {
		count, err := register.LoadRosterFile(*rosterPath)
		if err != nil {
			log.Fatalf("Failed to load roster %s: %v", *rosterPath, err)
		}
		log.Printf("Loaded %d students from %s", count, *rosterPath)
	}

	if *interactive {
		console.New(register, os.Stdin, os.Stdout).Run()
		return
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Create API handler (injecting the register)
	apiHandler := handlers.NewAPIHandler(register)

	// Initialize gin router
	router := gin.Default()

	// Setup API routes
	api := router.Group("/api")
	{
		// Student routes
		api.POST("/students", apiHandler.AddStudent)
		api.GET("/students/:id", apiHandler.SearchStudent)
		api.DELETE("/students/:id", apiHandler.DeleteStudent)
		api.GET("/students/:id/attendance", apiHandler.StudentAttendance)

		// Attendance routes
		api.POST("/attendance/mark", apiHandler.MarkAttendance)
		api.GET("/subjects", apiHandler.GetSubjects)

		// Report routes
		api.GET("/reports/:subject", apiHandler.SubjectReport)
		api.GET("/reports/:subject/xlsx", apiHandler.SubjectReportExcel)

		// Import routes
		api.POST("/import/students", apiHandler.ImportStudents)
		api.POST("/load", apiHandler.LoadRoster)

		// Ping route
		api.GET("/ping", handlers.PingHandler)
	}

	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
