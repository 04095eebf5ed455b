package handlers

// contextKeyUserID matches the context key the auth middleware stores the
// authenticated user's id under.
const contextKeyUserID = "userID"
