package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/intonado/intonado/constants"
	"github.com/intonado/intonado/model"
	"github.com/intonado/intonado/notation"
)

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the notation parser over HTTP",
	Long:  `Serves the notation parser over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

func handleParse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var input model.ParseRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "could not decode request body: "+err.Error())
		return
	}

	opts := notation.Options{UnitLength: input.UnitLength}
	if input.Key != "" {
		key, err := notation.ParseKey(input.Key)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Key = key
	}
	beats := constants.DefaultBeatsPerMeasure
	if input.Signature != "" {
		n, err := strconv.Atoi(strings.SplitN(input.Signature, "/", 2)[0])
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid time signature '"+input.Signature+"'")
			return
		}
		beats = n
	}

	elems, err := notation.ParseElements(input.Line, opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	report := notation.ValidateSignature(elems, beats, "request")

	res := model.ParseResult{
		Events:       make([]model.EventResult, 0),
		Violations:   make([]model.ViolationResult, 0),
		PartialStart: report.PartialStart,
		PartialEnd:   report.PartialEnd,
	}
	for _, el := range elems {
		if el.MeasureStart || el.MeasureEnd {
			continue
		}
		res.Events = append(res.Events, model.EventResult{
			Key:   el.Event.Key,
			Beats: el.Event.Beats,
			Rest:  el.Event.Rest,
			Tie:   el.Event.Tie,
		})
	}
	for _, v := range report.Violations {
		res.Violations = append(res.Violations, model.ViolationResult{
			Measure:  v.MeasureNum,
			Found:    v.Found,
			Expected: v.Expected,
			Message:  v.String(),
		})
	}
	json.NewEncoder(w).Encode(res)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/parse", handleParse).Methods("POST")
	handler := cors.Default().Handler(router)
	fmt.Printf("Listening on :%d\n", servePort)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", servePort), handler))
}
