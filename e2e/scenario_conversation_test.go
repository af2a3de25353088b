package e2e

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type testConversationSuite struct {
	BaseHTTPSuite
}

func TestConversationSuite(t *testing.T) {
	suite.Run(t, &testConversationSuite{})
}

type userBody struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type profileBody struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type messageBody struct {
	ID         string       `json:"id"`
	SenderID   string       `json:"sender_id"`
	ReceiverID string       `json:"receiver_id"`
	Text       string       `json:"text"`
	ImageURL   string       `json:"image_url"`
	Sender     *profileBody `json:"sender"`
}

func (s *testConversationSuite) TestFullConversationFlow() {
	// Unique emails so the suite can run repeatedly against the same
	// database.
	runID := time.Now().UnixNano()
	aliceEmail := fmt.Sprintf("alice+%d@example.com", runID)
	bobEmail := fmt.Sprintf("bob+%d@example.com", runID)

	alice := s.NewSession()
	bob := s.NewSession()
	var aliceUser, bobUser userBody

	s.Run("Step 1: both participants sign up", func() {
		status := s.DoJSON(alice, http.MethodPost, "/api/auth/signup", map[string]string{
			"name": "Alice E2E", "email": aliceEmail, "password": "s3cret-demo",
		}, &aliceUser)
		s.Require().Equal(http.StatusCreated, status)
		s.Require().NotEmpty(aliceUser.ID)

		status = s.DoJSON(bob, http.MethodPost, "/api/auth/signup", map[string]string{
			"name": "Bob E2E", "email": bobEmail, "password": "s3cret-demo",
		}, &bobUser)
		s.Require().Equal(http.StatusCreated, status)
	})

	s.Run("Step 2: signup cookie authenticates the session", func() {
		var me userBody
		status := s.DoJSON(alice, http.MethodGet, "/api/auth/check", nil, &me)
		s.Require().Equal(http.StatusOK, status)
		s.Require().Equal(aliceUser.ID, me.ID)
	})

	s.Run("Step 3: each side finds the other in the contacts", func() {
		var contacts []profileBody
		status := s.DoJSON(alice, http.MethodGet, "/api/contacts", nil, &contacts)
		s.Require().Equal(http.StatusOK, status)

		found := false
		for _, c := range contacts {
			s.Require().NotEqual(aliceUser.ID, c.ID, "contacts must not include the caller")
			if c.ID == bobUser.ID {
				found = true
			}
		}
		s.Require().True(found, "Bob missing from Alice's contacts")
	})

	s.Run("Step 4: messages flow both ways in order", func() {
		var created messageBody
		status := s.DoJSON(alice, http.MethodPost, "/api/messages/"+bobUser.ID+"/",
			map[string]string{"text": "hi"}, &created)
		s.Require().Equal(http.StatusCreated, status)
		s.Require().Equal(aliceUser.ID, created.SenderID)

		status = s.DoJSON(bob, http.MethodPost, "/api/messages/"+aliceUser.ID+"/",
			map[string]string{"text": "hey"}, &created)
		s.Require().Equal(http.StatusCreated, status)

		var thread []messageBody
		status = s.DoJSON(alice, http.MethodGet, "/api/messages/"+bobUser.ID+"/", nil, &thread)
		s.Require().Equal(http.StatusOK, status)
		s.Require().Len(thread, 2)
		s.Require().Equal("hi", thread[0].Text)
		s.Require().Equal("hey", thread[1].Text)
		s.Require().NotNil(thread[0].Sender)
		s.Require().Equal("Alice E2E", thread[0].Sender.Name)
	})

	s.Run("Step 5: an empty message is rejected without a trace", func() {
		status := s.DoJSON(alice, http.MethodPost, "/api/messages/"+bobUser.ID+"/",
			map[string]string{}, nil)
		s.Require().Equal(http.StatusBadRequest, status)

		var thread []messageBody
		status = s.DoJSON(alice, http.MethodGet, "/api/messages/"+bobUser.ID+"/", nil, &thread)
		s.Require().Equal(http.StatusOK, status)
		s.Require().Len(thread, 2)
	})

	s.Run("Step 6: logout invalidates the session", func() {
		status := s.DoJSON(bob, http.MethodPost, "/api/auth/logout", nil, nil)
		s.Require().Equal(http.StatusOK, status)

		status = s.DoJSON(bob, http.MethodGet, "/api/auth/check", nil, nil)
		s.Require().Equal(http.StatusUnauthorized, status)
	})
}
