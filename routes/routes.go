package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"p9e.in/obras/config"
	"p9e.in/obras/handlers"
	"p9e.in/obras/middleware"
	"p9e.in/obras/pkg/store"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes() http.Handler {
	handlers.Init(store.New(config.DB))

	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)

	// =====================================================
	// Public Routes (no authentication)
	// =====================================================
	r.HandleFunc("/register", handlers.Register).Methods("POST")
	r.HandleFunc("/login", handlers.Login).Methods("POST")
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir("./uploads"))),
	)

	// =====================================================
	// Protected API Routes (require JWT authentication)
	// =====================================================
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.JWTMiddleware)

	api.HandleFunc("/me", handlers.GetCurrentUser).Methods("GET")

	// Fixed-path obra routes come before the {id} CRUD routes so mux
	// doesn't swallow "stream" or "export" as an id.
	api.HandleFunc("/obras/stream", handlers.StreamObras).Methods("GET")
	api.HandleFunc("/obras/export", handlers.ExportObras).Methods("GET")
	api.HandleFunc("/responsaveis/stream", handlers.StreamResponsaveis).Methods("GET")

	registerCRUDRoutes(api, "/obras", crudHandlers{
		getAll: handlers.GetObras,
		create: handlers.CreateObra,
		getOne: handlers.GetObra,
		update: handlers.UpdateObra,
		delete: handlers.DeleteObra,
	})
	registerCRUDRoutes(api, "/responsaveis", crudHandlers{
		getAll: handlers.GetResponsaveis,
		create: handlers.CreateResponsavel,
		getOne: handlers.GetResponsavel,
		update: handlers.UpdateResponsavel,
		delete: handlers.DeleteResponsavel,
	})

	// Lifecycle transitions
	api.HandleFunc("/obras/{id}/start", handlers.StartObra).Methods("POST")
	api.HandleFunc("/obras/{id}/pause", handlers.PauseObra).Methods("POST")
	api.HandleFunc("/obras/{id}/complete", handlers.CompleteObra).Methods("POST")

	// Shape snapshot
	api.HandleFunc("/obras/{id}/mapeamento", handlers.GetMapeamento).Methods("GET")
	api.HandleFunc("/obras/{id}/mapeamento", handlers.PutMapeamento).Methods("PUT")
	api.HandleFunc("/obras/{id}/mapeamento/geojson", handlers.GetMapeamentoGeoJSON).Methods("GET")

	// Drawing sessions
	api.HandleFunc("/obras/{id}/desenho", handlers.OpenDrawing).Methods("POST")
	api.HandleFunc("/desenho/{sessionId}", handlers.GetDrawing).Methods("GET")
	api.HandleFunc("/desenho/{sessionId}", handlers.CloseDrawing).Methods("DELETE")
	api.HandleFunc("/desenho/{sessionId}/mode", handlers.SetDrawingMode).Methods("POST")
	api.HandleFunc("/desenho/{sessionId}/click", handlers.DrawingClick).Methods("POST")
	api.HandleFunc("/desenho/{sessionId}/move", handlers.DrawingMove).Methods("POST")
	api.HandleFunc("/desenho/{sessionId}/dblclick", handlers.DrawingDoubleClick).Methods("POST")
	api.HandleFunc("/desenho/{sessionId}/metadata", handlers.SetDrawingMetadata).Methods("POST")
	api.HandleFunc("/desenho/{sessionId}/shapes/{shapeId}", handlers.RemoveDrawingShape).Methods("DELETE")
	api.HandleFunc("/desenho/{sessionId}/clear", handlers.ClearDrawing).Methods("POST")
	api.HandleFunc("/desenho/{sessionId}/save", handlers.SaveDrawing).Methods("POST")

	// Fleet map
	api.HandleFunc("/mapa/obras", handlers.GetMapaObras).Methods("GET")

	// Export, geocoding, photos
	api.HandleFunc("/obras/{id}/export", handlers.ExportObra).Methods("GET")
	api.HandleFunc("/geocode/reverse", handlers.ReverseGeocode).Methods("GET")
	api.HandleFunc("/geocode/search", handlers.SearchGeocode).Methods("GET")
	api.HandleFunc("/obras/{id}/fotos", handlers.UploadObraFoto).Methods("POST")

	return r
}

type crudHandlers struct {
	getAll func(http.ResponseWriter, *http.Request)
	create func(http.ResponseWriter, *http.Request)
	getOne func(http.ResponseWriter, *http.Request)
	update func(http.ResponseWriter, *http.Request)
	delete func(http.ResponseWriter, *http.Request)
}

// registerCRUDRoutes registers standard CRUD routes for a resource
func registerCRUDRoutes(router *mux.Router, path string, h crudHandlers) {
	router.HandleFunc(path, h.getAll).Methods("GET")
	router.HandleFunc(path, h.create).Methods("POST")
	router.HandleFunc(path+"/{id}", h.getOne).Methods("GET")
	router.HandleFunc(path+"/{id}", h.update).Methods("PUT")
	router.HandleFunc(path+"/{id}", h.delete).Methods("DELETE")
}
