package mockapi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/api"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/i18n"
	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/chat"
)

func newTestClient(t *testing.T) *api.Client {
	t.Helper()
	srv := httptest.NewServer(NewServer().Router())
	t.Cleanup(srv.Close)
	return api.New(srv.URL + "/api")
}

func TestChatRoundTrip(t *testing.T) {
	client := newTestClient(t)

	reply, err := client.Chat(context.Background(), "How is the weather today?")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)

	// Malayalam input should get a Malayalam reply.
	reply, err = client.Chat(context.Background(), "നെല്ല് എങ്ങനെ വളർത്താം?")
	require.NoError(t, err)
	assert.Equal(t, i18n.Malayalam, i18n.Detect(reply))
}

func TestChatEmptyMessageRejected(t *testing.T) {
	client := newTestClient(t)

	_, err := client.Chat(context.Background(), "")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestChatImage(t *testing.T) {
	client := newTestClient(t)

	att := chat.Attachment{
		Name: "leaf.jpg",
		MIME: "image/jpeg",
		Data: []byte{0xff, 0xd8, 0xff, 0xe0},
	}
	reply, err := client.ChatImage(context.Background(), att, "what is wrong with this leaf")
	require.NoError(t, err)
	assert.NotEmpty(t, reply)
}

func TestTranslate(t *testing.T) {
	client := newTestClient(t)

	out, err := client.Translate(context.Background(), "hello", i18n.English, i18n.Malayalam)
	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}

func TestSynthesizeReturnsAudio(t *testing.T) {
	client := newTestClient(t)

	audio, contentType, err := client.Synthesize(context.Background(), "hello farmer", i18n.English)
	require.NoError(t, err)
	assert.Equal(t, "audio/wav", contentType)
	assert.NotEmpty(t, audio)
}

func TestActivityLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	initial, err := client.ListActivities(ctx)
	require.NoError(t, err)

	id, err := client.CreateActivity(ctx, api.NewActivity{
		FarmID:       1,
		ActivityType: "Irrigation",
		Date:         "15/06/2025",
		Details:      "Flooded east paddy block",
		Cost:         250,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	after, err := client.ListActivities(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(initial)+1)

	err = client.UpdateActivity(ctx, id, api.NewActivity{FarmID: 1, ActivityType: "Irrigation", Status: "completed"})
	require.NoError(t, err)

	err = client.DeleteActivity(ctx, id)
	require.NoError(t, err)

	final, err := client.ListActivities(ctx)
	require.NoError(t, err)
	assert.Len(t, final, len(initial))
}

func TestActivityValidation(t *testing.T) {
	client := newTestClient(t)

	_, err := client.CreateActivity(context.Background(), api.NewActivity{})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestFarmerAndFarm(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	farmers, err := client.ListFarmers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, farmers)

	farmer, err := client.GetFarmer(ctx, farmers[0].ID)
	require.NoError(t, err)
	assert.Equal(t, farmers[0].Name, farmer.Name)

	farms, err := client.ListFarms(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, farms)
	assert.Equal(t, farmer.ID, farms[0].FarmerID)
}

func TestDashboardAndForecast(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	dash, err := client.Dashboard(ctx, "Kochi")
	require.NoError(t, err)
	assert.NotEmpty(t, dash.MarketPrices)
	assert.NotZero(t, dash.Weather.Temperature)

	forecast, err := client.WeatherForecast(ctx, "Thrissur")
	require.NoError(t, err)
	assert.Equal(t, "Thrissur", forecast.Location)
	assert.NotEmpty(t, forecast.Days)
}

func TestSchemes(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	schemes, err := client.ListSchemes(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, schemes)

	one, err := client.GetScheme(ctx, schemes[0].ID)
	require.NoError(t, err)
	assert.Equal(t, schemes[0].Name.EN, one.Name.EN)

	recs, advice, err := client.DefaultRecommendations(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, recs)
	assert.NotEmpty(t, advice)
	require.NotNil(t, recs[0].Recommendation)

	matches, err := client.SearchSchemes(ctx, "insurance", "", i18n.English)
	require.NoError(t, err)
	for _, m := range matches {
		assert.Contains(t, m.Description.EN+m.Name.EN, "nsurance")
	}

	elig, err := client.CheckEligibility(ctx, schemes[0].ID, map[string]string{"landholding": "2 acres"}, i18n.English)
	require.NoError(t, err)
	assert.True(t, elig.Eligible)
	assert.NotEmpty(t, elig.NextSteps)
}

func TestKnowledge(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	article, err := client.KnowledgeContent(ctx, "paddy calendar", 2, i18n.English)
	require.NoError(t, err)
	assert.NotEmpty(t, article.Content)
	assert.Equal(t, 2, article.CategoryID)

	prices, err := client.KnowledgeMarketPrices(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, prices)

	analysis, err := client.KnowledgeWeatherAnalysis(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, analysis.Analysis)
}
