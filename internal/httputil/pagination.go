package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination safely parses and validates page and page_size query
// parameters. Pages are 1-indexed with a default page of 1 and a default
// page_size of 10. The page_size cannot exceed 100.
func ParsePagination(c *gin.Context) (page, pageSize int, err error) {
	pageStr := c.DefaultQuery("page", "1")
	page, err = strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("invalid page parameter: must be a positive integer")
	}

	pageSizeStr := c.DefaultQuery("page_size", "10")
	pageSize, err = strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		return 0, 0, fmt.Errorf("invalid page_size parameter: must be between 1 and 100")
	}

	return page, pageSize, nil
}
