package handler

import (
	"tienduca/internal/domain/service"
	"tienduca/internal/usecase"
	"tienduca/internal/usecase/session"
)

var (
	authHandler    *AuthHandler
	listingHandler *ListingHandler
	fileHandler    *FileHandler
	healthHandler  *HealthHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	listingUseCase *usecase.ListingUseCase,
	watcher *session.InactivityWatcher,
) {
	authHandler = NewAuthHandler(authUseCase, watcher)
	listingHandler = NewListingHandler(listingUseCase)
}

func SetupFileHandler(fileService service.FileUploadService) {
	fileHandler = NewFileHandler(fileService)
}

func SetupHealthHandler() {
	healthHandler = NewHealthHandler()
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
