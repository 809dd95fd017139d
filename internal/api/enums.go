package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bendichter/aind-data-schema/internal/reference"
	"github.com/bendichter/aind-data-schema/internal/vocab"
)

type enumListItem struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
}

func EnumListHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		enums := s.Catalog().Enums()
		out := make([]enumListItem, 0, len(enums))
		for _, e := range enums {
			out = append(out, enumListItem{Name: e.Name(), Members: e.Len()})
		}
		c.JSON(http.StatusOK, out)
	}
}

func EnumHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, ok := s.Catalog().Enum(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Enum not found"})
			return
		}
		c.JSON(http.StatusOK, reference.Directory(e))
	}
}

type resolvedMember struct {
	Enum     string        `json:"enum"`
	Code     string        `json:"code"`
	Identity vocab.PIDName `json:"identity"`
}

// EnumResolveHandler ищет элемент по ?name= или ?abbreviation=.
func EnumResolveHandler(s *Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, ok := s.Catalog().Enum(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Enum not found"})
			return
		}
		name, byName := c.GetQuery("name")
		abbr, byAbbr := c.GetQuery("abbreviation")
		if byName == byAbbr {
			c.JSON(http.StatusBadRequest, gin.H{"error": "exactly one of name or abbreviation is required"})
			return
		}
		var (
			m   vocab.Member
			err error
		)
		if byName {
			m, err = e.ResolveByName(name)
		} else {
			m, err = e.ResolveByAbbreviation(abbr)
		}
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, resolvedMember{Enum: e.Name(), Code: m.Tag(), Identity: m.Identity()})
	}
}
