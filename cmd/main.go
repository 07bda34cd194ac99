package main

import (
	"github.com/Marino59/dieta/config"
	"github.com/Marino59/dieta/routes"
	"github.com/Marino59/dieta/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter()
	r.Run(":8080")
}
