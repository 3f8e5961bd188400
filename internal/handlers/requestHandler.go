package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/docuchat/api/internal/adapter"
	"github.com/docuchat/api/internal/adapter/utils"
	"github.com/docuchat/api/internal/api"
	"github.com/docuchat/api/internal/config"
	"github.com/docuchat/api/pkg/logger_i"
)

var logRH *logger_i.Logger

type newJobData struct {
	id             string
	traceId        string
	documentName   string
	documentSource string
}

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	return
}

// UploadDocumentHandler godoc
// @Summary      Upload a document for ingestion
// @Description  Receives a PDF via multipart/form-data, saves it to a temporary directory, and queues an ingestion job.
// @Tags         Documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        document_name  formData  string  false  "Display name of the document (defaults to the uploaded filename)"
// @Param        document       formData  file    true   "The PDF file to upload"
// @Success      202  {object}  api.InitJobResponse  "Accepted - track progress at status_url"
// @Failure      400  {object}  api.JobResponse      "Missing file, non-PDF upload, or file too large"
// @Failure      500  {object}  api.JobResponse      "Storage or write error"
// @Router       /documents [post]
func UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		targetDir, errString := getTargetDirectory()

		if errString != "" {
			logRH.Error("Couldn't get target directory :", "err", errString)
			WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes)
		err := r.ParseMultipartForm(config.MaxUploadBytes)
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
			return
		}

		fileReader, fileMetadata, err := r.FormFile("document")
		if err != nil {
			WriteErrorResponse(w, http.StatusBadRequest, "", "Could not retrieve file")
			return
		}
		defer fileReader.Close()

		docName := r.FormValue("document_name")
		if docName == "" {
			docName = fileMetadata.Filename
		}

		if !strings.EqualFold(filepath.Ext(fileMetadata.Filename), ".pdf") {
			WriteErrorResponse(w, http.StatusBadRequest, docName, "Only PDF uploads are supported")
			return
		}

		filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
		tempFilePath := filepath.Join(targetDir, filename)
		destinationFileWriter, err := os.Create(tempFilePath)
		if err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, docName, "Storage error")
			return
		}
		defer destinationFileWriter.Close()

		if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
			WriteErrorResponse(w, http.StatusInternalServerError, docName, "Write error")
			return
		}

		newJob := newJobData{
			id:             utils.GetNewUUID(),
			traceId:        r.Context().Value(config.TRACE_ID_KEY).(string),
			documentName:   docName,
			documentSource: tempFilePath,
		}
		CreateNewJob(newJob)
		writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// SearchHandler godoc
// @Summary      Search indexed documents
// @Description  Embeds the query and returns the top matching chunks ranked by cosine similarity. An empty result list is a valid answer.
// @Tags         Search
// @Accept       json
// @Produce      json
// @Param        request  body      api.SearchRequest   true  "Query text"
// @Success      200      {object}  api.SearchResponse  "Ranked matches, possibly empty"
// @Failure      400      {object}  api.JobResponse     "Missing or empty query"
// @Failure      500      {object}  api.JobResponse     "Embedding or store failure"
// @Router       /search [post]
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {

		var requestData api.SearchRequest
		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logRH.Error("Couldn't close the Search handler reader :", err)
			}
		}(r.Body)
		if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || strings.TrimSpace(requestData.Query) == "" {
			logRH.Warn("Bad Search Request: ", "error:", err)
			WriteErrorResponse(w, http.StatusBadRequest, "", "query is required")
			return
		}

		matches, err := handlerInstance.ragService.Search(r.Context(), requestData.Query)
		if err != nil {
			logRH.Error("Search failed", "error", err)
			WriteErrorResponse(w, http.StatusInternalServerError, "", "Search failed")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToSearchResponse(requestData.Query, matches))
		return
	}
	logRH.Warn("Invalid Context by request ", r.RemoteAddr)
}

// ListDocumentsHandler godoc
// @Summary      List ingested documents
// @Description  Returns every document currently in the index in ingestion order.
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.DocumentListResponse
// @Router       /documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		docs := handlerInstance.ragService.ListDocuments(r.Context())
		writeJsonResponse(w, http.StatusOK, adapter.ToDocumentListResponse(docs))
	}
}

// DeleteDocumentHandler godoc
// @Summary      Remove a document from the index
// @Description  Deletes the named document and all of its chunks. Removing an unknown document returns 404.
// @Tags         Documents
// @Produce      json
// @Param        name  path      string  true  "Document name"
// @Success      200   {object}  api.DeleteDocumentResponse
// @Failure      404   {object}  api.JobResponse  "Document not found"
// @Router       /documents/{name} [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		name := utils.GetChiURLParam(r, "name")
		if name == "" {
			WriteErrorResponse(w, http.StatusBadRequest, "", "document name is required")
			return
		}

		removed := handlerInstance.ragService.RemoveDocument(r.Context(), name)
		if !removed {
			WriteErrorResponse(w, http.StatusNotFound, name, "Document not found")
			return
		}
		writeJsonResponse(w, http.StatusOK, api.DeleteDocumentResponse{Name: name, Removed: true})
	}
}

// GetStatusHandler godoc
// @Summary      Get ingestion job status
// @Description  Retrieves the current status of an ingestion job using its ID.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse  "The current status of the job"
// @Failure      404  {object}  api.JobResponse  "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		idString := utils.GetChiURLParam(r, "id")
		result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

		logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
		if !isFound {
			WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
			return
		}

		writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
	}
}

// EmbedderStatusHandler godoc
// @Summary      Embedder readiness
// @Description  Reports the lifecycle state of the embedding backend: Uninitialized, Loading, Ready or Failed.
// @Tags         Status
// @Produce      json
// @Success      200  {object}  api.EmbedderStatusResponse
// @Router       /embedder [get]
func EmbedderStatusHandler(w http.ResponseWriter, r *http.Request) {
	if validateContext(r.Context()) {
		state := handlerInstance.ragService.EmbedderState()
		writeJsonResponse(w, http.StatusOK, api.EmbedderStatusResponse{State: string(state)})
	}
}
