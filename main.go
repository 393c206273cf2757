package main

import (
	"log"
	"net/http"
	"os"

	"github.com/signworks/go-orderportal/app/cmd"
	"github.com/signworks/go-orderportal/app/configs"
	"github.com/signworks/go-orderportal/app/routes"
)

func main() {
	env := configs.LoadENV

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatalf("❌ Session keys invalid: %v. Run 'generate-keys' and update .env.", err)
	}

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	router := routes.NewRouter(db, env, keys)

	server := http.Server{
		Addr:    env.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("❌ Server stopped: %v", err)
	}
}
