package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-travel-api/internal/database"
	"go-travel-api/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// RunAgent answers an admin's natural-language question about the
// catalog and bookings, with tool access to read the catalog, adjust
// package prices, and pull booking revenue.
func RunAgent(userMessage string, apiKey string) (string, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.0-flash-001")

	today := time.Now().Format("2006-01-02")

	systemPrompt := fmt.Sprintf(`SYSTEM: Today is %s. You are the back-office assistant of a travel booking platform.

	RULES:
	1. UPDATE: If the admin asks to change a package price by NAME (e.g. "Update Bromo price"), do NOT ask for the ID. Instead:
	   - Call 'check_catalog' to find the ID.
	   - Call 'update_package_price' using that ID.

	2. READ: If the admin asks for PRICE, CAPACITY, DEPARTURE DATE, or DETAILS of a package:
	   - You MUST call 'check_catalog' to get the full list.
	   - Then read the JSON to find the specific package and answer.

	3. CREATE: If the admin asks to add a new package, call 'create_package'. Ask for the departure date if it is missing.

	4. REVENUE: If the admin asks about bookings, seats sold, or revenue, use 'get_booking_report'. Only confirmed bookings count as revenue.

	USER: %s`, today, userMessage)

	// --- DEFINE TOOLS ---
	model.Tools = []*genai.Tool{
		{
			FunctionDeclarations: []*genai.FunctionDeclaration{
				{
					Name:        "check_catalog",
					Description: "Get the full travel package catalog. Use this to find ANY package details like ID, Name, Price, Capacity, or Departure date.",
				},
				{
					Name:        "update_package_price",
					Description: "Update the per-person price of a travel package using its ID",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"wisata_id": {Type: genai.TypeInteger, Description: "ID of the package"},
							"new_price": {Type: genai.TypeNumber, Description: "New price per person in IDR"},
						},
						Required: []string{"wisata_id", "new_price"},
					},
				},
				{
					Name:        "create_package",
					Description: "Add a new travel package to the catalog",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"nama":      {Type: genai.TypeString, Description: "Package name"},
							"lokasi":    {Type: genai.TypeString, Description: "Location"},
							"harga":     {Type: genai.TypeNumber, Description: "Price per person in IDR"},
							"kapasitas": {Type: genai.TypeInteger, Description: "Seat capacity"},
							"departure": {Type: genai.TypeString, Description: "Departure date (YYYY-MM-DD)"},
						},
						Required: []string{"nama", "harga", "kapasitas", "departure"},
					},
				},
				{
					Name:        "get_booking_report",
					Description: "Get confirmed booking revenue and seat counts for a date range.",
					Parameters: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"start_date": {Type: genai.TypeString, Description: "Start date (YYYY-MM-DD)"},
							"end_date":   {Type: genai.TypeString, Description: "End date (YYYY-MM-DD)"},
						},
						Required: []string{"start_date", "end_date"},
					},
				},
			},
		},
	}

	session := model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(systemPrompt))
	if err != nil {
		return "", err
	}

	// --- HANDLE TOOL CALLS ---
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {

			// TOOL 1: Check Catalog
			if funcCall.Name == "check_catalog" {
				var wisatas []models.Wisata
				database.DB.Find(&wisatas)

				type SimpleWisata struct {
					ID        uint    `json:"id"`
					Nama      string  `json:"nama"`
					Lokasi    string  `json:"lokasi"`
					Harga     float64 `json:"harga"`
					Kapasitas int     `json:"kapasitas"`
					Departure string  `json:"departure"`
					Status    string  `json:"status"`
				}
				var simpleList []SimpleWisata
				for _, w := range wisatas {
					simpleList = append(simpleList, SimpleWisata{
						ID:        w.ID,
						Nama:      w.Nama,
						Lokasi:    w.Lokasi,
						Harga:     w.Harga,
						Kapasitas: w.Kapasitas,
						Departure: w.Pemberangkatan.Format("2006-01-02"),
						Status:    w.Status,
					})
				}

				jsonBytes, _ := json.Marshal(simpleList)

				toolResp := genai.FunctionResponse{
					Name:     "check_catalog",
					Response: map[string]interface{}{"catalog": string(jsonBytes)},
				}

				finalResp, err := session.SendMessage(ctx, toolResp)
				if err != nil {
					return "", err
				}

				return handleRecursiveToolCalls(ctx, session, finalResp), nil
			}

			// TOOL 2: Update Price
			if funcCall.Name == "update_package_price" {
				return executeUpdatePrice(ctx, session, funcCall), nil
			}

			// TOOL 3: Create Package
			if funcCall.Name == "create_package" {
				return executeCreatePackage(ctx, session, funcCall), nil
			}

			// TOOL 4: Booking Report
			if funcCall.Name == "get_booking_report" {
				return executeBookingReport(ctx, session, funcCall), nil
			}
		}
	}

	return printResponse(resp), nil
}

// --- HELPER FUNCTIONS ---

func handleRecursiveToolCalls(ctx context.Context, session *genai.ChatSession, resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if funcCall, ok := part.(genai.FunctionCall); ok {
			if funcCall.Name == "update_package_price" {
				return executeUpdatePrice(ctx, session, funcCall)
			}
		}
	}
	return printResponse(resp)
}

func executeUpdatePrice(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	wisataID := int(args["wisata_id"].(float64))
	newPrice := args["new_price"].(float64)

	result := database.DB.Model(&models.Wisata{}).Where("id = ?", wisataID).Update("harga", newPrice)

	msg := "Success"
	if result.RowsAffected == 0 {
		msg = "Package ID not found"
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "update_package_price",
		Response: map[string]interface{}{"status": msg, "new_price": newPrice},
	})
	return printResponse(finalResp)
}

func executeCreatePackage(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args

	departure, err := time.Parse("2006-01-02", args["departure"].(string))
	if err != nil {
		return "Error: Departure date must be in YYYY-MM-DD format."
	}

	wisata := models.Wisata{
		Nama:           args["nama"].(string),
		Harga:          args["harga"].(float64),
		Kapasitas:      int(args["kapasitas"].(float64)),
		Pemberangkatan: departure,
		Status:         "tersedia",
	}
	if lokasi, ok := args["lokasi"].(string); ok {
		wisata.Lokasi = lokasi
	}

	msg := "Success"
	if err := database.DB.Create(&wisata).Error; err != nil {
		msg = "Failed to create package"
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name:     "create_package",
		Response: map[string]interface{}{"status": msg, "wisata_id": wisata.ID},
	})
	return printResponse(finalResp)
}

func executeBookingReport(ctx context.Context, session *genai.ChatSession, funcCall genai.FunctionCall) string {
	args := funcCall.Args
	startStr := args["start_date"].(string)
	endStr := args["end_date"].(string)

	start, err1 := time.Parse("2006-01-02", startStr)
	end, err2 := time.Parse("2006-01-02", endStr)

	if err1 != nil || err2 != nil {
		return "Error: Dates must be in YYYY-MM-DD format."
	}
	end = end.Add(23*time.Hour + 59*time.Minute)

	report, err := database.GetBookingReport(start, end)
	if err != nil {
		return "Error calculating bookings."
	}

	finalResp, _ := session.SendMessage(ctx, genai.FunctionResponse{
		Name: "get_booking_report",
		Response: map[string]interface{}{
			"revenue":       report.TotalRevenue,
			"booking_count": report.TotalCount,
			"seats_sold":    report.TotalSeats,
		},
	})
	return printResponse(finalResp)
}

func printResponse(resp *genai.GenerateContentResponse) string {
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			return string(txt)
		}
	}
	return "I completed the action."
}
